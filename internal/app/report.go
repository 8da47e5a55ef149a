package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/threemf/internal/ctxlog"
	"github.com/vk/threemf/internal/field"
	"github.com/vk/threemf/internal/hclmodel"
	"github.com/vk/threemf/internal/implicit"
	"github.com/vk/threemf/internal/object"
	"github.com/vk/threemf/internal/resource"
	"gopkg.in/yaml.v3"
)

// Report is the outcome of checking a model.
type Report struct {
	Valid         bool             `yaml:"valid" json:"valid"`
	Files         []string         `yaml:"files" json:"files"`
	Resources     []ResourceReport `yaml:"resources" json:"resources"`
	EmissionOrder []string         `yaml:"emission_order,omitempty" json:"emission_order,omitempty"`
	Errors        []string         `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// ResourceReport is the outcome of checking one resource.
type ResourceReport struct {
	ID        uint32   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Kind      string   `yaml:"kind" json:"kind"`
	Valid     bool     `yaml:"valid" json:"valid"`
	State     string   `yaml:"state,omitempty" json:"state,omitempty"`
	NodeOrder []string `yaml:"node_order,omitempty" json:"node_order,omitempty"`
	Errors    []string `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// InvalidCount returns how many resources failed their checks.
func (r *Report) InvalidCount() int {
	n := 0
	for _, rr := range r.Resources {
		if !rr.Valid {
			n++
		}
	}
	return n
}

// Write encodes the report as yaml or json.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported report format %q", format)
}

// Check validates every resource of doc in registration order. Functions
// that validate are also sorted so the report shows their evaluation order.
func Check(ctx context.Context, doc *hclmodel.Document, failFast bool) *Report {
	logger := ctxlog.FromContext(ctx)
	report := &Report{Valid: true}
	for path := range doc.Files {
		report.Files = append(report.Files, path)
	}
	sort.Strings(report.Files)

	for _, res := range doc.Model.Resources() {
		pid := res.PackageResourceID()
		rr := ResourceReport{
			ID:   uint32(pid.ModelResourceID()),
			Name: doc.Name(pid),
			Kind: doc.Kinds[pid],
		}
		err := checkResource(res, &rr)
		rr.Valid = err == nil
		rr.Errors = errorLines(err)
		report.Resources = append(report.Resources, rr)

		if err != nil {
			report.Valid = false
			logger.Warn("Resource is invalid.", "kind", rr.Kind, "name", rr.Name, "id", rr.ID, "errors", len(rr.Errors))
			if failFast {
				logger.Debug("Stopping at first invalid resource.")
				return report
			}
			continue
		}
		logger.Debug("Resource is valid.", "kind", rr.Kind, "name", rr.Name, "id", rr.ID)
	}

	sorted, err := doc.Model.SortedResources()
	if err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
		return report
	}
	for _, res := range sorted {
		pid := res.PackageResourceID()
		report.EmissionOrder = append(report.EmissionOrder, fmt.Sprintf("%s %s", doc.Kinds[pid], doc.Name(pid)))
	}
	return report
}

// checkResource dispatches on the resource variant.
func checkResource(res resource.Resource, rr *ResourceReport) error {
	switch r := res.(type) {
	case *implicit.Function:
		defer func() { rr.State = r.State().String() }()
		if err := r.Validate(); err != nil {
			return err
		}
		if err := r.SortNodesTopologically(); err != nil {
			return err
		}
		for _, n := range r.Nodes() {
			rr.NodeOrder = append(rr.NodeOrder, n.Identifier())
		}
		return nil
	case field.ScalarField:
		return r.Validate()
	case *field.VolumeData:
		return r.Validate()
	case *field.Image3D:
		return nil
	case object.Object:
		return checkObject(r)
	}
	return fmt.Errorf("%w: unsupported resource %T", resource.ErrUnknownModelResource, res)
}

func checkObject(o object.Object) error {
	switch o.Kind() {
	case object.KindLevelSet:
		return o.(*object.LevelSetObject).Validate()
	default:
		if !o.IsValid() {
			return fmt.Errorf("%s object %s: %w", o.Kind(), o.PackageResourceID(), resource.ErrInvalidModelResource)
		}
		return nil
	}
}

// errorLines flattens aggregated errors into one line each.
func errorLines(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		lines := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			lines = append(lines, errorLines(e)...)
		}
		return lines
	}
	return []string{err.Error()}
}
