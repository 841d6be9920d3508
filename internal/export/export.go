package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/promplot/internal/channel"
)

// ChannelData is the JSON form of one extracted channel.
type ChannelData struct {
	Channel   string      `json:"channel"`
	Samples   int         `json:"samples"`
	Mean      []float64   `json:"mean"`
	Deviation []float64   `json:"deviation"`
	Lower     []float64   `json:"lower"`
	Upper     []float64   `json:"upper"`
	Demos     [][]float64 `json:"demos,omitempty"`
}

type Document struct {
	Demonstrations int           `json:"demonstrations"`
	Channels       []ChannelData `json:"channels"`
}

var csvHeader = []string{"channel", "sample", "mean", "deviation", "lower", "upper"}

// WriteCSV writes one row per channel and sample in long format. Values are
// written with the shortest representation that parses back to the same float64.
func WriteCSV(w io.Writer, series []channel.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for _, s := range series {
		if len(s.Deviation) != len(s.Mean) || len(s.Lower) != len(s.Mean) || len(s.Upper) != len(s.Mean) {
			return fmt.Errorf("export: channel %s has inconsistent lengths", s.Channel)
		}
		for i := range s.Mean {
			row[0] = s.Channel.String()
			row[1] = strconv.Itoa(i)
			row[2] = formatFloat(s.Mean[i])
			row[3] = formatFloat(s.Deviation[i])
			row[4] = formatFloat(s.Lower[i])
			row[5] = formatFloat(s.Upper[i])
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the series as an indented document. Demonstration
// curves are included only when withDemos is set.
func WriteJSON(w io.Writer, series []channel.Series, withDemos bool) error {
	doc := Document{Channels: make([]ChannelData, 0, len(series))}
	for _, s := range series {
		cd := ChannelData{
			Channel:   s.Channel.String(),
			Samples:   s.Samples(),
			Mean:      s.Mean,
			Deviation: s.Deviation,
			Lower:     s.Lower,
			Upper:     s.Upper,
		}
		if withDemos {
			cd.Demos = make([][]float64, len(s.Demos))
			for i, d := range s.Demos {
				cd.Demos[i] = d
			}
		}
		if len(s.Demos) > doc.Demonstrations {
			doc.Demonstrations = len(s.Demos)
		}
		doc.Channels = append(doc.Channels, cd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
