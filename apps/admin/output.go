package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/placement/core/directory"
)

// output formats
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printStudents(w io.Writer, format string, students []directory.Student) error {
	if students == nil {
		students = []directory.Student{}
	}
	if format != formatTable {
		return encode(w, format, students)
	}

	tbl := newTable("", "ID", "NAME", "EMAIL", "DEPARTMENT", "BATCH", "ARREAR", "APPROVED", "PLACED")
	for _, s := range students {
		tbl.addRow(s.ID, s.Name, s.Email, s.Department, s.Batch, yesNo(s.HasArrear), yesNo(s.IsApproved), yesNo(s.IsPlaced))
	}
	_, err := io.WriteString(w, tbl.render())
	return err
}

func printStats(w io.Writer, format string, stats directory.PlacementStats) error {
	if format != formatTable {
		return encode(w, format, stats)
	}

	summary := newTable("Placements", "METRIC", "VALUE")
	summary.addRow("Students", strconv.Itoa(stats.Total))
	summary.addRow("Placed", strconv.Itoa(stats.Placed))
	summary.addRow("Not placed", strconv.Itoa(stats.NotPlaced))
	summary.addRow("Pending approval", strconv.Itoa(stats.Pending))
	summary.addRow("Placement rate", percent(stats.Rate))

	out := []string{
		summary.render(),
		groupTable("By department", "DEPARTMENT", stats.Departments).render(),
		groupTable("By batch", "BATCH", stats.Batches).render(),
	}
	_, err := io.WriteString(w, strings.Join(out, "\n"))
	return err
}

func percent(rate int) string {
	return fmt.Sprintf("%d%%", rate)
}

func groupTable(title, key string, groups []directory.GroupStats) *table {
	tbl := newTable(title, key, "TOTAL", "PLACED", "RATE")
	for _, g := range groups {
		tbl.addRow(g.Name, strconv.Itoa(g.Total), strconv.Itoa(g.Placed), percent(g.Rate))
	}
	return tbl
}
