// Package obt builds the One-Big-Table: which leads converted into which
// policies with which carriers.
package obt

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/obt-cli/internal/dedupe"
	"github.com/sells-group/obt-cli/internal/match"
	"github.com/sells-group/obt-cli/internal/normalize"
	"github.com/sells-group/obt-cli/internal/reconcile"
	"github.com/sells-group/obt-cli/internal/table"
)

// Sources are the three raw sheets.
type Sources struct {
	Carrier *table.Table
	Sales   *table.Table
	Lead    *table.Table
}

// Cleaned is one source after normalization and deduplication.
type Cleaned struct {
	Source string
	Table  *table.Table
	Report dedupe.Report
}

// Stage records the matcher statistics of one join stage.
type Stage struct {
	Name  string      `yaml:"name"`
	Stats match.Stats `yaml:"stats"`
}

// Result holds every table the pipeline produces.
type Result struct {
	Carrier Cleaned
	Sales   Cleaned
	Lead    Cleaned
	Final   *table.Table
	Stages  []Stage
}

// CleanedSources returns the cleaned sources in export order.
func (r *Result) CleanedSources() []Cleaned {
	return []Cleaned{r.Lead, r.Sales, r.Carrier}
}

// Build cleans each source and joins them: normalize → dedupe → lead/sales
// match → reconcile → carrier match → final projection.
func Build(ctx context.Context, src Sources) (*Result, error) {
	res := &Result{}

	var err error
	if res.Lead, err = Clean(src.Lead, leadSchema, leadKeys...); err != nil {
		return nil, err
	}
	if res.Sales, err = Clean(src.Sales, salesSchema); err != nil {
		return nil, err
	}
	if res.Carrier, err = Clean(src.Carrier, carrierSchema); err != nil {
		return nil, err
	}
	if res.Final, res.Stages, err = Join(ctx, res.Lead.Table, res.Sales.Table, res.Carrier.Table); err != nil {
		return nil, err
	}
	return res, nil
}

// Join runs both match stages over already cleaned tables and returns the
// One-Big-Table with per-stage statistics.
func Join(ctx context.Context, lead, sales, carrier *table.Table) (*table.Table, []Stage, error) {
	log := zap.L().With(zap.String("component", "obt"))
	if err := ctx.Err(); err != nil {
		return nil, nil, eris.Wrap(err, "obt: cancelled before join")
	}

	merged, stats, err := MergeLeadSales(lead, sales)
	if err != nil {
		return nil, nil, err
	}
	stages := []Stage{{Name: "lead_sales", Stats: stats}}
	logStage(log, "lead_sales", stats)

	if err := ctx.Err(); err != nil {
		return nil, nil, eris.Wrap(err, "obt: cancelled after lead/sales merge")
	}

	final, stats, err := MergeCarrier(carrier, merged)
	if err != nil {
		return nil, nil, err
	}
	stages = append(stages, Stage{Name: "carrier", Stats: stats})
	logStage(log, "carrier", stats)

	log.Info("one-big-table built", zap.Int("rows", final.Len()))
	return final, stages, nil
}

// Clean normalizes raw against schema and keeps the first row per key
// (whole row when no keys are given). The data-loss report is advisory.
func Clean(raw *table.Table, schema normalize.Schema, keys ...string) (Cleaned, error) {
	log := zap.L().With(zap.String("component", "obt"), zap.String("source", schema.Source))

	if raw == nil {
		return Cleaned{}, eris.Errorf("obt: %s: no table", schema.Source)
	}
	norm, err := normalize.Apply(raw, schema)
	if err != nil {
		return Cleaned{}, eris.Wrapf(err, "obt: normalize %s", schema.Source)
	}
	kept, err := dedupe.Rows(norm, keys...)
	if err != nil {
		return Cleaned{}, eris.Wrapf(err, "obt: dedupe %s", schema.Source)
	}

	rep, err := dedupe.Loss(raw.Len(), kept.Len())
	if err != nil {
		log.Warn("data loss undefined", zap.Error(err))
	}
	log.Info("source cleaned",
		zap.Int("raw_rows", rep.Raw),
		zap.Int("clean_rows", rep.Kept),
		zap.Float64("data_loss_pct", rep.LossPct),
	)

	return Cleaned{Source: schema.Source, Table: kept, Report: rep}, nil
}

// MergeLeadSales resolves each lead to at most one sales row and reconciles
// the overlapping fields. The result carries a derived full_name column.
func MergeLeadSales(lead, sales *table.Table) (*table.Table, match.Stats, error) {
	res, err := match.Cascade(lead, sales, leadSalesStrategies)
	if err != nil {
		return nil, match.Stats{}, eris.Wrap(err, "obt: match lead/sales")
	}

	t, err := res.Table.Drop(SalesFirstName, SalesLastName, SalesPhone)
	if err != nil {
		return nil, res.Stats, eris.Wrap(err, "obt: lead/sales")
	}
	t, err = reconcile.Rename(t, map[string]string{
		LeadPhone:         colPhone,
		LeadFirstName:     colFirstName,
		LeadLastName:      colLastName,
		LeadDateConverted: colSoldDate,
		LeadVendor:        colVendor,
	})
	if err != nil {
		return nil, res.Stats, err
	}

	// lead values win; sales fills gaps, except the application id where
	// the sales record is authoritative
	for _, c := range []struct{ target, primary, secondary string }{
		{colLanguage, LeadLanguage, SalesLanguage},
		{colState, LeadState, SalesState},
		{SalesApplication, SalesApplication, LeadApplication},
	} {
		if t, err = reconcile.Columns(t, c.target, c.primary, c.secondary); err != nil {
			return nil, res.Stats, eris.Wrap(err, "obt: lead/sales")
		}
	}

	t, err = reconcile.WithFullName(t, colFullName, colFirstName, colLastName)
	if err != nil {
		return nil, res.Stats, eris.Wrap(err, "obt: lead/sales")
	}
	return t, res.Stats, nil
}

// carrier-stage columns taken from the lead/sales table
var mergedForCarrier = []string{
	colFullName,
	colPhone,
	SalesEmail,
	LeadID,
	SalesApplication,
	colState,
	colLanguage,
	colVendor,
	colSoldDate,
}

// MergeCarrier resolves each carrier row to at most one lead/sales row on
// (full name, phone) and projects the final schema.
func MergeCarrier(carrier, merged *table.Table) (*table.Table, match.Stats, error) {
	primary, err := carrier.Select(CarrierFullName, CarrierPhone, CarrierName, CarrierPolicyID, CarrierAgent)
	if err != nil {
		return nil, match.Stats{}, eris.Wrap(err, "obt: carrier")
	}
	side, err := merged.Select(mergedForCarrier...)
	if err != nil {
		return nil, match.Stats{}, eris.Wrap(err, "obt: carrier")
	}
	res, err := match.Cascade(primary, side, carrierStrategies)
	if err != nil {
		return nil, match.Stats{}, eris.Wrap(err, "obt: match carrier")
	}

	t, err := reconcile.SplitColumn(res.Table, CarrierFullName, FinalColumns[0], FinalColumns[1])
	if err != nil {
		return nil, res.Stats, eris.Wrap(err, "obt: carrier")
	}
	t, err = reconcile.Rename(t, map[string]string{
		SalesEmail:       "Email",
		LeadID:           "Lead_ID",
		CarrierName:      "Carrier_Name",
		CarrierPolicyID:  "Policy_ID",
		SalesApplication: "FFM_Application_ID",
		colState:         "State",
		colLanguage:      "Language",
		CarrierAgent:     "Agent_Name",
		colVendor:        "Vendor_Name",
	})
	if err != nil {
		return nil, res.Stats, err
	}
	t, err = t.Select(FinalColumns...)
	if err != nil {
		return nil, res.Stats, eris.Wrap(err, "obt: final projection")
	}
	return t, res.Stats, nil
}

func logStage(log *zap.Logger, name string, s match.Stats) {
	fields := []zap.Field{
		zap.String("stage", name),
		zap.Int("rows", s.Rows),
		zap.Int("unmatched", s.Unmatched),
	}
	for _, st := range s.Strategies {
		fields = append(fields, zap.Int("resolved_"+st.Name, st.Resolved))
	}
	log.Info("stage matched", fields...)
}
