package obt

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/obt-cli/internal/fetcher"
	"github.com/sells-group/obt-cli/internal/normalize"
)

// Load reads the carrier, sales and lead sheets by position. Sheets past the
// third are ignored.
func Load(wb *fetcher.Workbook) (Sources, error) {
	names := wb.SheetNames()
	zap.L().Info("workbook sheets",
		zap.String("path", wb.Path()),
		zap.Strings("sheets", names),
	)

	if len(names) < sheetCount {
		var missing []string
		for i := len(names); i < sheetCount; i++ {
			missing = append(missing, fmt.Sprintf("sheet %d (%s)", i+1, sheetSources[i]))
		}
		return Sources{}, &normalize.SchemaError{Source: "workbook", Missing: missing}
	}

	carrier, err := wb.Table(SheetCarrier)
	if err != nil {
		return Sources{}, eris.Wrapf(err, "obt: load %s", SourceCarrier)
	}
	sales, err := wb.Table(SheetSales)
	if err != nil {
		return Sources{}, eris.Wrapf(err, "obt: load %s", SourceSales)
	}
	lead, err := wb.Table(SheetLead)
	if err != nil {
		return Sources{}, eris.Wrapf(err, "obt: load %s", SourceLead)
	}
	return Sources{Carrier: carrier, Sales: sales, Lead: lead}, nil
}

var sheetSources = [sheetCount]string{SourceCarrier, SourceSales, SourceLead}
