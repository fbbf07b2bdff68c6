package report

// The report page is an A4 portrait template drawn in points. Two variants
// exist: the standard one, and one with a comments box, which pushes the
// chart further up the page. Chart offsets are measured from the page
// bottom, matching the template the print shop signed off on.

const (
	pageWidth  = 595.28
	pageHeight = 841.89

	chartX      = 310
	chartWidth  = 260
	chartHeight = 170

	chartBottomOffset         = 165
	chartBottomOffsetComments = 365
)

type fieldSlot struct {
	Label string
	X, Y  float64 // top-left of the value text, points from page top-left
	Bold  bool
}

type layout struct {
	Name        string
	Slots       map[string]fieldSlot
	ChartBottom float64 // offset from page bottom to the chart's lower edge
}

func baseSlots() map[string]fieldSlot {
	return map[string]fieldSlot{
		"nome":  {Label: "Cliente", X: 120, Y: 130, Bold: true},
		"clube": {Label: "Clube", X: 120, Y: 150, Bold: true},

		"email":  {Label: "Email", X: 120, Y: 170},
		"fone":   {Label: "Telefone", X: 120, Y: 190},
		"data":   {Label: "Data", X: 420, Y: 130},
		"cidade": {Label: "Cidade", X: 420, Y: 150},

		"marca":  {Label: "Marca do carrinho", X: 120, Y: 235},
		"modelo": {Label: "Modelo", X: 120, Y: 255},
		"numero": {Label: "Número", X: 120, Y: 275},

		"marcaBat":   {Label: "Marca da bateria", X: 340, Y: 235},
		"quantidade": {Label: "Quantidade", X: 340, Y: 255},
		"tipo":       {Label: "Tipo", X: 340, Y: 275},
		"tensao":     {Label: "Tensão", X: 340, Y: 295},

		"caixa":     {Label: "Caixa", X: 120, Y: 340},
		"parafusos": {Label: "Parafusos", X: 120, Y: 360},
		"terminais": {Label: "Terminais", X: 120, Y: 380},
		"polos":     {Label: "Polos", X: 120, Y: 400},
		"nivel":     {Label: "Nível", X: 120, Y: 420},
	}
}

func standardLayout() layout {
	return layout{
		Name:        "Relatorio",
		Slots:       baseSlots(),
		ChartBottom: chartBottomOffset,
	}
}

func commentsLayout() layout {
	slots := baseSlots()
	slots["comentarios"] = fieldSlot{Label: "Comentários", X: 60, Y: 680}
	return layout{
		Name:        "RelatorioC",
		Slots:       slots,
		ChartBottom: chartBottomOffsetComments,
	}
}
