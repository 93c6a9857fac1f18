package telegram

import (
	"bytes"
	"errors"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Charts строит PNG-диаграммы для отчётов.
type Charts struct{}

func NewCharts() *Charts { return &Charts{} }

func (Charts) RenderBar(labels []string, values []int) ([]byte, error) {
	if len(labels) == 0 || len(labels) != len(values) {
		return nil, errors.New("chart: empty or mismatched data")
	}
	bars := make([]chart.Value, 0, len(labels))
	maxVal := 0
	for i := range labels {
		v := values[i]
		if v > maxVal {
			maxVal = v
		}
		bars = append(bars, chart.Value{Value: float64(v), Label: labels[i]})
	}
	// Избежать ошибки invalid data range при нулевых значениях
	yMax := float64(maxVal)
	if yMax <= 0 {
		yMax = 1
	}
	graph := chart.BarChart{
		Width:    1100,
		Height:   600,
		BarWidth: 56,
		Background: chart.Style{Padding: chart.Box{
			Top:    50,
			Left:   16,
			Right:  16,
			Bottom: 0,
		}},
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: yMax}},
		Bars:  bars,
	}
	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
