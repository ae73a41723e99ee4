package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"office-pump/internal/workbook"

	"github.com/sirupsen/logrus"
)

// Inputs are the files of one consolidation run.
type Inputs struct {
	Exports []string
	MTD     string // optional
	Mapping string
}

// Result is everything a run produces.
type Result struct {
	Records []Record
	Mapping []MappingEntry
	Series  []Series
	Summary Summary
}

// Consolidator runs the load, resolve, enforce and aggregate pipeline.
type Consolidator struct {
	cfg Config
	log logrus.FieldLogger
}

func NewConsolidator(cfg Config, log logrus.FieldLogger) *Consolidator {
	return &Consolidator{cfg: cfg, log: log}
}

// Run consolidates the inputs. Unreadable files abort the run; bad rows and
// unmapped accounts are dropped and counted.
func (c *Consolidator) Run(in Inputs) (*Result, error) {
	if len(in.Exports) == 0 {
		return nil, workbook.ErrNoInputs
	}
	if in.Mapping == "" {
		return nil, errors.New("mapping file is required")
	}
	sum := Summary{ByRule: make(map[Rule]int)}

	mapping, err := c.loadMapping(in.Mapping, &sum)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, path := range in.Exports {
		recs, err := c.loadLedger(path, c.cfg.Export, &sum)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	if in.MTD != "" {
		recs, err := c.loadLedger(in.MTD, c.cfg.MTD, &sum)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	resolver := NewResolver(mapping, c.cfg.Entities, c.cfg.Mapping.NewSheet)
	tagged := c.Resolve(resolver, records, &sum)

	kept, dropped := EnforceSingleEntity(tagged)
	sum.ConflictDropped = dropped
	sum.Retained = len(kept)
	if dropped > 0 {
		c.log.WithField("dropped", dropped).Info("dropped records conflicting with the day's entity")
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date.Before(kept[j].Date)
	})

	res := &Result{Records: kept, Mapping: mapping, Summary: sum}
	for _, e := range c.cfg.Entities {
		label := strings.ToUpper(e.Label)
		res.Series = append(res.Series,
			Aggregate(kept, label, false, c.cfg.TBLabel),
			Aggregate(kept, label, true, c.cfg.TBLabel),
		)
	}
	return res, nil
}

// Resolve tags records with their entity. Records without any candidate are
// dropped and counted as unmapped.
func (c *Consolidator) Resolve(r *Resolver, records []Record, sum *Summary) []Record {
	tagged := make([]Record, 0, len(records))
	for _, rec := range records {
		entity, rule := r.Resolve(rec)
		if rule == RuleNone {
			sum.Unmapped++
			continue
		}
		rec.Entity = entity
		rec.Rule = rule
		sum.ByRule[rule]++
		tagged = append(tagged, rec)
	}
	if sum.Unmapped > 0 {
		c.log.WithField("unmapped", sum.Unmapped).Warn("records without an entity mapping were dropped")
	}
	return tagged
}

func (c *Consolidator) loadLedger(path string, src SourceConfig, sum *Summary) ([]Record, error) {
	sheet, err := workbook.ReadSheet(path, src.Sheet, src.HeaderRow)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", path, err)
	}
	recs, stats, err := NormalizeRecords(sheet, c.cfg.Columns, src.Entity)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"file":            path,
		"loaded":          stats.Loaded,
		"missing_date":    stats.MissingDate,
		"missing_account": stats.MissingAccount,
	}).Info("ledger loaded")

	sum.Files++
	sum.Loaded += stats.Loaded
	sum.MissingDate += stats.MissingDate
	sum.MissingAccount += stats.MissingAccount
	sum.NullAmounts += stats.NullAmounts
	return recs, nil
}

func (c *Consolidator) loadMapping(path string, sum *Summary) ([]MappingEntry, error) {
	var all []MappingEntry
	for _, name := range []string{c.cfg.Mapping.NewSheet, c.cfg.Mapping.OldSheet} {
		if name == "" {
			continue
		}
		sheet, err := workbook.ReadSheet(path, name, c.cfg.Mapping.HeaderRow)
		if err != nil {
			if name == c.cfg.Mapping.OldSheet && errors.Is(err, workbook.ErrSheetNotFound) {
				c.log.WithField("sheet", name).Warn("mapping sheet not found, continuing without it")
				continue
			}
			return nil, fmt.Errorf("mapping %s: %w", path, err)
		}
		entries, dropped, err := NormalizeMapping(sheet, c.cfg)
		if err != nil {
			return nil, err
		}
		sum.MappingRows += len(entries)
		sum.MappingDropped += dropped
		all = append(all, entries...)
	}
	c.log.WithFields(logrus.Fields{"file": path, "entries": len(all)}).Info("account mapping loaded")
	return all, nil
}

// Consolidate is shorthand for NewConsolidator(cfg, log).Run(in).
func Consolidate(in Inputs, cfg Config, log logrus.FieldLogger) (*Result, error) {
	return NewConsolidator(cfg, log).Run(in)
}
