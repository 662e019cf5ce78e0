package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	climodel "CurrentCalc/internal/cli/model"
	"CurrentCalc/internal/config"
)

type currentExportCmd struct{}

func (currentExportCmd) Name() string { return "current-export" }
func (currentExportCmd) Description() string {
	return "Выгрузить заявку в PDF-отчёт"
}
func (currentExportCmd) Usage() string { return "current-export <id> [--out report.pdf]" }

func (currentExportCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("current-export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	out := fs.String("out", "", "путь к PDF-файлу")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseUint(rest[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	path := *out
	if path == "" {
		path = fmt.Sprintf("current-calculation-%d.pdf", id)
	}

	if err := requireAuth(cfg); err != nil {
		return err
	}
	svc := newCurrentService(cfg)
	c, err := svc.Detail(ctx, uint(id))
	if err != nil {
		return err
	}
	if err := writeCalculationPDF(c, path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	fmt.Fprintf(Out, "Отчёт сохранён: %s\n", path)
	return nil
}

// writeCalculationPDF рендерит заявку в PDF. Текст латиницей: базовые
// шрифты gofpdf не содержат кириллицы.
func writeCalculationPDF(c *climodel.CurrentCalculation, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Current calculation #%d", c.CurrentID))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Status: "+climodel.NormalizeStatus(c.Status))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Board voltage: %g V", c.VoltageBord))
	pdf.Ln(7)
	if c.FormDate != "" {
		pdf.Cell(0, 7, "Formed: "+c.FormDate)
		pdf.Ln(7)
	}
	if c.FinishDate != "" {
		pdf.Cell(0, 7, "Finished: "+c.FinishDate)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(20, 8, "ID", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 8, "Device", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Current, A", "1", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, cd := range c.Devices {
		amp := "-"
		if cd.Amperage != nil {
			amp = fmt.Sprintf("%.2f", *cd.Amperage)
		}
		pdf.CellFormat(20, 8, strconv.FormatUint(uint64(cd.DeviceID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 8, cd.DeviceName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, strconv.Itoa(cd.Amount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, amp, "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f A", c.Total()))

	return pdf.OutputFileAndClose(path)
}

func init() { RegisterCmd(currentExportCmd{}) }
