package simulation

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteLedgerCSV writes the ledger to path, creating the parent directory.
func WriteLedgerCSV(path string, res *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeLedgerCSV(f, res)
}

func EncodeLedgerCSV(out io.Writer, res *Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"hour",
		"strategy",
		"action",
		"net_load_kw",
		"charge_kw",
		"discharge_kw",
		"grid_kw",
		"grid_buy_kw",
		"grid_sell_kw",
		"energy_start_kwh",
		"energy_end_kwh",
		"buy_price",
		"sell_price",
		"cost",
		"cum_cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range res.Hours {
		row := []string{
			strconv.Itoa(r.Hour),
			res.Strategy.Label(),
			string(r.Action),
			fmtFloat(r.NetLoadKW),
			fmtFloat(r.ChargeKW),
			fmtFloat(r.DischargeKW),
			fmtFloat(r.GridKW),
			fmtFloat(r.GridBuyKW),
			fmtFloat(r.GridSellKW),
			fmtFloat(r.EnergyStartKWh),
			fmtFloat(r.EnergyEndKWh),
			fmtFloat(r.BuyPrice),
			fmtFloat(r.SellPrice),
			fmtFloat(r.Cost),
			fmtFloat(r.CumulativeCost),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
