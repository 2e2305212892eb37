package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	apperrors "gdchart/internal/errors"
	"gdchart/pkg/contracts/domain"
)

type timeframeFile struct {
	Timeframes []timeframeEntry `yaml:"timeframes" validate:"dive"`
}

type timeframeEntry struct {
	Start  string `yaml:"start" validate:"required,isodate"`
	End    string `yaml:"end" validate:"required,isodate"`
	Label  string `yaml:"label"`
	Colour string `yaml:"colour" validate:"omitempty,hexcolor"`
}

// DefaultTimeframes returns the shaded off-season gaps from 2014 to 2025
// and the 2020 shutdown.
func DefaultTimeframes() []domain.Timeframe {
	gaps := [][2]string{
		{"2014-05-12", "2014-08-15"},
		{"2015-05-25", "2015-08-07"},
		{"2016-05-22", "2016-08-06"},
		{"2017-05-25", "2017-08-07"},
		{"2018-05-20", "2018-08-09"},
		{"2019-05-13", "2019-08-10"},
		{"2020-07-27", "2020-08-04"},
		{"2021-05-27", "2021-08-13"},
		{"2022-05-23", "2022-08-06"},
		{"2023-06-04", "2023-08-13"},
		{"2024-05-26", "2024-08-09"},
		{"2025-05-26", "2025-08-16"},
	}

	out := make([]domain.Timeframe, 0, len(gaps)+1)
	for _, g := range gaps {
		out = append(out, domain.Timeframe{
			Start:  mustDate(g[0]),
			End:    mustDate(g[1]),
			Colour: TimeframeColour,
		})
	}
	out = append(out, domain.Timeframe{
		Start:  mustDate("2020-03-13"),
		End:    mustDate("2020-06-18"),
		Label:  "COVID-19 Shutdown",
		Colour: TimeframeColour,
	})
	return out
}

// LoadTimeframes reads a YAML timeframe list. An empty path returns the defaults.
func LoadTimeframes(path string) ([]domain.Timeframe, error) {
	if path == "" {
		return DefaultTimeframes(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("timeframes file").WithContext("path", path)
		}
		return nil, apperrors.NewConfigError("failed to read timeframes file", err)
	}

	return ParseTimeframes(data)
}

// ParseTimeframes decodes and validates YAML timeframe data.
func ParseTimeframes(data []byte) ([]domain.Timeframe, error) {
	var file timeframeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewConfigError("invalid timeframes yaml", err)
	}

	if err := NewValidator().Struct(file); err != nil {
		return nil, apperrors.NewValidationError("invalid timeframe", err)
	}

	out := make([]domain.Timeframe, 0, len(file.Timeframes))
	for i, e := range file.Timeframes {
		start, _ := time.Parse(DateLayout, e.Start)
		end, _ := time.Parse(DateLayout, e.End)
		if end.Before(start) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("timeframe %d ends before it starts", i), nil).
				WithContext("start", e.Start).
				WithContext("end", e.End)
		}
		colour := e.Colour
		if colour == "" {
			colour = TimeframeColour
		}
		out = append(out, domain.Timeframe{Start: start, End: end, Label: e.Label, Colour: colour})
	}
	return out, nil
}

func mustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
