package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"battery-dispatch/internal/model"

	"gopkg.in/yaml.v3"
)

// SeriesFile is the on-disk shape of a day profile (JSON or YAML).
//
// Example:
//
//	{
//	  "load_kw":    [0.6, 0.5, ...],
//	  "pv_kw":      [0.0, 0.0, ...],
//	  "buy_price":  [1.99, ...],
//	  "sell_price": [5.6279, ...]
//	}
type SeriesFile struct {
	LoadKW    []float64 `json:"load_kw" yaml:"load_kw"`
	PVKW      []float64 `json:"pv_kw" yaml:"pv_kw"`
	BuyPrice  []float64 `json:"buy_price" yaml:"buy_price"`
	SellPrice []float64 `json:"sell_price" yaml:"sell_price"`
}

func (f SeriesFile) ToModel() (model.DaySeries, error) {
	return model.SeriesFromSlices(f.LoadKW, f.PVKW, f.BuyPrice, f.SellPrice)
}

// SeriesFileFromModel is the inverse of ToModel.
func SeriesFileFromModel(s model.DaySeries) SeriesFile {
	return SeriesFile{
		LoadKW:    append([]float64(nil), s.LoadKW[:]...),
		PVKW:      append([]float64(nil), s.PVKW[:]...),
		BuyPrice:  append([]float64(nil), s.BuyPrice[:]...),
		SellPrice: append([]float64(nil), s.SellPrice[:]...),
	}
}

// LoadSeriesFile reads a day profile, choosing the decoder by file extension.
func LoadSeriesFile(path string) (model.DaySeries, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.DaySeries{}, err
	}
	var f SeriesFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &f)
	default:
		return model.DaySeries{}, fmt.Errorf("unsupported series format: %s", ext)
	}
	if err != nil {
		return model.DaySeries{}, fmt.Errorf("decode %s: %w", path, err)
	}
	s, err := f.ToModel()
	if err != nil {
		return model.DaySeries{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
