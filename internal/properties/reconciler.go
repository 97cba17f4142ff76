package properties

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sourceplane/udpublish/internal/model"
)

// ComponentService exposes the version property sheet of a component.
type ComponentService interface {
	GetPropertySheetDefinition(ctx context.Context, component string) (*model.PropertySheetDefinition, error)
}

// PropertyService reads and extends property sheet definitions.
type PropertyService interface {
	ListPropertyDefinitions(ctx context.Context, sheetPath string) ([]model.PropertyDefinition, error)
	CreatePropertyDefinition(ctx context.Context, sheetID uuid.UUID, sheetPath string, def model.PropertyDefinition) error
}

// ValueService stamps property values on a single version.
type ValueService interface {
	SetVersionProperty(ctx context.Context, version, component, name, value string) error
}

// Result lists which desired names matched an existing definition and which
// had to be created, in processing order.
type Result struct {
	Updated []string
	Created []string
}

// Reconciler brings a version's properties in line with a desired set, creating
// missing definitions on the component's version property sheet.
type Reconciler struct {
	Components  ComponentService
	Definitions PropertyService
	Values      ValueService
	Out         io.Writer
}

// NewReconciler creates a reconciler writing its transcript to out.
func NewReconciler(components ComponentService, definitions PropertyService, values ValueService, out io.Writer) *Reconciler {
	if out == nil {
		out = io.Discard
	}
	return &Reconciler{
		Components:  components,
		Definitions: definitions,
		Values:      values,
		Out:         out,
	}
}

// ReconcileBlob parses blob and reconciles the result. Nothing remote is called
// when the blob is malformed.
func (r *Reconciler) ReconcileBlob(ctx context.Context, component, version, blob string) (*Result, error) {
	desired, err := Parse(blob)
	if err != nil {
		return nil, err
	}
	return r.Reconcile(ctx, component, version, desired)
}

// Reconcile writes every desired property onto the version. Names matching an
// existing definition get their value written and a failure there aborts the
// run. Remaining names get a new TEXT definition plus a value; failures there
// are collected and returned together after all names were tried.
func (r *Reconciler) Reconcile(ctx context.Context, component, version string, desired model.DesiredProperties) (*Result, error) {
	result := &Result{Updated: []string{}, Created: []string{}}
	if len(desired) == 0 {
		return result, nil
	}

	sheet, err := r.Components.GetPropertySheetDefinition(ctx, component)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire version property sheet for component '%s': %w",
			model.ErrSchemaFetchFailed, component, err)
	}

	existing, err := r.Definitions.ListPropertyDefinitions(ctx, sheet.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire property definitions of the version property sheet for component '%s': %w",
			model.ErrSchemaFetchFailed, component, err)
	}

	remaining := mapset.NewThreadUnsafeSet[string]()
	for name := range desired {
		remaining.Add(name)
	}

	for _, def := range existing {
		if !remaining.Contains(def.Name) {
			continue
		}

		fmt.Fprintf(r.Out, "  Setting version property %s\n", def.Name)
		if err := r.Values.SetVersionProperty(ctx, version, component, def.Name, desired[def.Name]); err != nil {
			return result, fmt.Errorf("%w: failed to set the value of existing property '%s': %w",
				model.ErrPropertyUpdateFailed, def.Name, err)
		}
		remaining.Remove(def.Name)
		result.Updated = append(result.Updated, def.Name)
	}

	if remaining.Cardinality() == 0 {
		return result, nil
	}

	sheetID, err := uuid.Parse(sheet.ID)
	if err != nil {
		return result, fmt.Errorf("%w: property sheet of component '%s' has malformed id '%s': %w",
			model.ErrSchemaFetchFailed, component, sheet.ID, err)
	}

	missing := remaining.ToSlice()
	sort.Strings(missing)

	fmt.Fprintln(r.Out, "  Creating new property definitions.")
	var errs []error
	for _, name := range missing {
		if err := r.create(ctx, sheetID, sheet.Path, component, version, name, desired[name]); err != nil {
			fmt.Fprintf(r.Out, "  %v\n", err)
			errs = append(errs, err)
			continue
		}
		result.Created = append(result.Created, name)
	}

	return result, errors.Join(errs...)
}

func (r *Reconciler) create(ctx context.Context, sheetID uuid.UUID, sheetPath, component, version, name, value string) error {
	fmt.Fprintf(r.Out, "  Creating property definition for: %s\n", name)

	def := model.PropertyDefinition{
		Name:     name,
		Required: false,
		Type:     model.PropertyTypeText,
		Value:    value,
	}
	if err := r.Definitions.CreatePropertyDefinition(ctx, sheetID, sheetPath, def); err != nil {
		return fmt.Errorf("%w: failed to create property definition '%s' on property sheet '%s': %w",
			model.ErrPropertyCreationFailed, name, sheetID, err)
	}

	if err := r.Values.SetVersionProperty(ctx, version, component, name, value); err != nil {
		return fmt.Errorf("%w: failed to set new version property '%s' for version '%s': %w",
			model.ErrPropertyCreationFailed, name, version, err)
	}

	fmt.Fprintf(r.Out, "  Successfully created version property %s\n", name)
	return nil
}
