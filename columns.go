package fondos

// Column names shared by both extracts and by the remote collections.
const (
	ColRun   = "fo_run"
	ColSerie = "fm_serie"
	ColID    = "id"
	ColFund  = "fondo_id"

	ColName          = "nombre_fondo"
	ColManager       = "nombre_agf"
	ColFamilyStudy   = "familia_estudios"
	ColFamilyView    = "familia_visualizador"
	ColFamilyRisk    = "familia_rar"
	ColInvestorClass = "clase_inversionista"
	ColDigital       = "serie_digital"
	ColCurrency      = "moneda_funcional"

	ColAsOf = "fm_fecha"

	ColSyntheticCost = "tac_sintetica"
	ColAssets        = "pat_total"
	ColDateNum       = "fm_fecha_num"
)

// ReturnFigures are the optional figures of a return record.
var ReturnFigures = []string{
	"rent_nominal_1a",
	"rent_nominal_3a_ann",
	"rent_nominal_5a_ann",
	"rent_nominal_10a_ann",
	"rent_real_1a",
	"rent_real_3a_ann",
	"rent_real_5a_ann",
	"rent_real_10a_ann",
	"ind_rar_pond",
}

// fundReturnColumns is the projection of the returns extract on a Fund.
var fundReturnColumns = []string{
	ColName, ColManager,
	ColFamilyStudy, ColFamilyView, ColFamilyRisk,
	ColInvestorClass, ColDigital,
}

// fundCostColumns is the projection of the costs extract on a Fund.
var fundCostColumns = []string{ColCurrency}

// ReturnsSchema is the layout of the returns extract.
var ReturnsSchema = func() Schema {
	s := Schema{
		{ColRun, Number},
		{ColSerie, Text},
		{ColName, Text},
		{ColManager, Text},
		{ColFamilyStudy, Text},
		{ColFamilyView, Text},
		{ColFamilyRisk, Text},
		{ColInvestorClass, Text},
		{ColDigital, Number},
		{ColAsOf, Text},
	}
	for _, f := range ReturnFigures {
		s = append(s, Column{f, Number})
	}
	return s
}()

// CostsSchema is the layout of the costs extract.
var CostsSchema = Schema{
	{ColRun, Number},
	{ColSerie, Text},
	{ColCurrency, Text},
	{ColSyntheticCost, Number},
	{ColAssets, Number},
	{ColDateNum, Number},
}
