// Package display renders the ledger as a terminal table.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"

	"grocery-voice-ledger/ledger"
)

type Interface interface {
	Show(entries []ledger.Entry) error
}

type tableImpl struct {
	out io.Writer
}

type Config struct {
	Out io.Writer
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	return &tableImpl{out: out}, nil
}

func (d *tableImpl) Show(entries []ledger.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(d.out, "Ledger is empty")

		return err
	}

	data := pterm.TableData{{"NUM", "UNIT", "ITEM", "DATE"}}

	for _, e := range entries {
		data = append(data, []string{
			strconv.FormatFloat(e.Quantity, 'f', -1, 64),
			e.Unit,
			e.Item,
			e.Date,
		})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render ledger: %w", err)
	}

	_, err = fmt.Fprintln(d.out, rendered)

	return err
}
