package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/etnz/fondos"
	"github.com/hashicorp/go-retryablehttp"
)

// registryRow is the projection of a fund read back from the registry.
type registryRow struct {
	ID    int64       `json:"id"`
	Run   json.Number `json:"fo_run"`
	Serie any         `json:"fm_serie"`
}

// Keys reads the whole fund registry and maps every natural key to its
// surrogate id.
//
// The registry is read page by page, since the server caps the size of a
// response. On any failure Keys returns an empty map and the error.
// When a key is stored more than once (a previous run loaded it too), the most
// recent id wins.
func (c *Client) Keys(ctx context.Context) (fondos.KeyMap, error) {
	ids := make(fondos.KeyMap)
	skipped := 0
	for offset := 0; ; offset += c.page {
		q := url.Values{
			"select": {fondos.ColID + "," + fondos.ColRun + "," + fondos.ColSerie},
			"order":  {fondos.ColID + ".asc"},
			"limit":  {strconv.Itoa(c.page)},
			"offset": {strconv.Itoa(offset)},
		}
		var rows []registryRow
		if err := c.jwget(ctx, c.URL(fondos.CollectionFunds)+"?"+q.Encode(), &rows); err != nil {
			return fondos.KeyMap{}, err
		}
		for _, r := range rows {
			k, ok := fondos.KeyOf(fondos.TextValue(r.Run.String()), serieValue(r.Serie))
			if !ok {
				skipped++
				continue
			}
			ids[k] = r.ID
		}
		if len(rows) < c.page {
			break
		}
	}
	if skipped > 0 {
		log.Printf("  %d registry rows without a usable key were ignored", skipped)
	}
	return ids, nil
}

// serieValue converts the JSON series code, a string or (for purely numeric
// codes stored in a numeric column) a number.
func serieValue(v any) fondos.Value {
	switch s := v.(type) {
	case string:
		return fondos.TextValue(s)
	case float64:
		return fondos.TextValue(strconv.FormatFloat(s, 'f', -1, 64))
	}
	return fondos.Value{}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	resp, body, err := c.do(req)
	if err != nil {
		return err
	}
	if !success(resp.StatusCode) {
		return fmt.Errorf("cannot http GET %v/%v: %w", resp.Request.URL.Host, resp.Request.URL.Path,
			&StatusError{Code: resp.StatusCode, Status: resp.Status, Message: errorText(body)})
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("cannot decode %v: %w", resp.Request.URL.Path, err)
	}
	return nil
}
