// Package artifacts loads the frozen startup artifacts and enforces the
// contract between them.
//
// Four artifacts must agree for predictions to mean anything: the feature
// schema (column order and type vocabulary), the two scaler parameter sets,
// and the classifier coefficients. The type chart and dex dataset must use
// the same closed type vocabulary. Any disagreement is reported here, once,
// at process start, never at request time.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/features"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/predict"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/typechart"
)

// supportedVersion is the artifact format this build understands.
const supportedVersion = 1

// Artifact file names within the bundle directory.
const (
	schemaFile        = "schema.json"
	rawScalerFile     = "scaler_raw.json"
	derivedScalerFile = "scaler_derived.json"
	modelFile         = "model.json"
	typeChartFile     = "typechart.json"
	dexFile           = "dex.json"
)

// Bundle holds every validated startup artifact, ready for injection into
// the pipeline components.
type Bundle struct {
	Schema        *features.Schema
	RawScaler     *features.ScalerParams
	DerivedScaler *features.ScalerParams
	Model         *predict.LogisticModel
	Chart         *typechart.Chart
	Species       []model.Combatant
	Moves         []model.Move
}

// Wire shapes of the JSON artifacts.

type schemaArtifact struct {
	Version        int          `json:"version"`
	Width          int          `json:"width"`
	TypeVocabulary []model.Type `json:"type_vocabulary"`
	NumericColumns []string     `json:"numeric_columns"`
	DerivedColumns []string     `json:"derived_columns"`
}

type scalerArtifact struct {
	Columns []string  `json:"columns"`
	Means   []float64 `json:"means"`
	Stds    []float64 `json:"stds"`
}

type modelArtifact struct {
	Version   int       `json:"version"`
	Width     int       `json:"width"`
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

type typeChartArtifact struct {
	Types       []model.Type                          `json:"types"`
	Multipliers map[model.Type]map[model.Type]float64 `json:"multipliers"`
}

type dexArtifact struct {
	Species []speciesRecord `json:"species"`
	Moves   []moveRecord    `json:"moves"`
}

type speciesRecord struct {
	Name  string       `json:"name"`
	Types []model.Type `json:"types"`
	Stats struct {
		HP        float64 `json:"hp"`
		Attack    float64 `json:"attack"`
		Defense   float64 `json:"defense"`
		SpAttack  float64 `json:"sp_attack"`
		SpDefense float64 `json:"sp_defense"`
		Speed     float64 `json:"speed"`
	} `json:"stats"`
}

type moveRecord struct {
	Name     string         `json:"name"`
	Type     model.Type     `json:"type"`
	Power    float64        `json:"power"`
	Accuracy float64        `json:"accuracy"`
	Priority float64        `json:"priority"`
	Category model.Category `json:"category"`
}

// Load reads the embedded artifact bundle.
func Load(ctx context.Context) (*Bundle, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingArtifact, err)
	}
	return LoadFrom(ctx, sub)
}

// LoadDir reads an artifact bundle from a directory on disk, allowing a
// deployment to override the embedded bundle with a retrained one.
func LoadDir(ctx context.Context, dir string) (*Bundle, error) {
	return LoadFrom(ctx, os.DirFS(dir))
}

// LoadFrom reads and cross-validates all artifacts from fsys.
func LoadFrom(ctx context.Context, fsys fs.FS) (*Bundle, error) {
	var schema schemaArtifact
	if err := readJSON(fsys, schemaFile, &schema); err != nil {
		return nil, err
	}
	if schema.Version != supportedVersion {
		return nil, fmt.Errorf("%w: schema version %d, supported %d",
			ErrVersionMismatch, schema.Version, supportedVersion)
	}

	frozen, err := features.NewSchema(schema.Version, schema.TypeVocabulary,
		schema.NumericColumns, schema.DerivedColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if frozen.Width() != schema.Width {
		return nil, fmt.Errorf("%w: schema declares width %d, layout expands to %d",
			ErrContractViolated, schema.Width, frozen.Width())
	}

	var rawScaler, derivedScaler scalerArtifact
	if err := readJSON(fsys, rawScalerFile, &rawScaler); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, derivedScalerFile, &derivedScaler); err != nil {
		return nil, err
	}

	raw, err := features.NewScalerParams(rawScaler.Columns, rawScaler.Means, rawScaler.Stds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawScalerFile, err)
	}
	derived, err := features.NewScalerParams(derivedScaler.Columns, derivedScaler.Means, derivedScaler.Stds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", derivedScalerFile, err)
	}

	var modelArt modelArtifact
	if err := readJSON(fsys, modelFile, &modelArt); err != nil {
		return nil, err
	}
	if modelArt.Version != supportedVersion {
		return nil, fmt.Errorf("%w: model version %d, supported %d",
			ErrVersionMismatch, modelArt.Version, supportedVersion)
	}
	if len(modelArt.Weights) != modelArt.Width {
		return nil, fmt.Errorf("%w: model declares width %d but carries %d weights",
			ErrContractViolated, modelArt.Width, len(modelArt.Weights))
	}
	estimator, err := predict.NewLogisticModel(modelArt.Weights, modelArt.Intercept)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", modelFile, err)
	}

	// The width check: the classifier consumes exactly what the schema
	// produces, or the process does not start.
	if estimator.Width() != frozen.Width() {
		return nil, fmt.Errorf("%w: model expects %d features, schema produces %d",
			ErrContractViolated, estimator.Width(), frozen.Width())
	}

	var chartArt typeChartArtifact
	if err := readJSON(fsys, typeChartFile, &chartArt); err != nil {
		return nil, err
	}
	chart, err := typechart.New(chartArt.Types, chartArt.Multipliers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", typeChartFile, err)
	}
	if err := sameVocabulary(frozen.Vocabulary(), chart.Vocabulary()); err != nil {
		return nil, err
	}

	var dex dexArtifact
	if err := readJSON(fsys, dexFile, &dex); err != nil {
		return nil, err
	}
	species, moves, err := dexRecords(dex, chart)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Schema:        frozen,
		RawScaler:     raw,
		DerivedScaler: derived,
		Model:         estimator,
		Chart:         chart,
		Species:       species,
		Moves:         moves,
	}, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMissingArtifact, name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return nil
}

// sameVocabulary requires the schema and chart to agree on the closed type
// set. A type known to one but not the other would make some valid inputs
// unscorable and others unencodable.
func sameVocabulary(schemaVocab, chartVocab []model.Type) error {
	if len(schemaVocab) != len(chartVocab) {
		return fmt.Errorf("%w: schema has %d types, chart has %d",
			ErrContractViolated, len(schemaVocab), len(chartVocab))
	}
	for i, t := range schemaVocab {
		if chartVocab[i] != t {
			return fmt.Errorf("%w: vocabulary diverges at %d: schema %q, chart %q",
				ErrContractViolated, i, t, chartVocab[i])
		}
	}
	return nil
}

// dexRecords converts wire records to domain snapshots, rejecting any
// record whose type falls outside the chart vocabulary so a bad dataset
// cannot smuggle unknown types past the per-request checks.
func dexRecords(dex dexArtifact, chart *typechart.Chart) ([]model.Combatant, []model.Move, error) {
	species := make([]model.Combatant, 0, len(dex.Species))
	for _, r := range dex.Species {
		if len(r.Types) == 0 || len(r.Types) > 2 {
			return nil, nil, fmt.Errorf("%w: species %q has %d types",
				ErrMalformed, r.Name, len(r.Types))
		}
		c := model.Combatant{
			Name:        r.Name,
			PrimaryType: r.Types[0],
			Stats: model.StatBlock{
				HP:        r.Stats.HP,
				Attack:    r.Stats.Attack,
				Defense:   r.Stats.Defense,
				SpAttack:  r.Stats.SpAttack,
				SpDefense: r.Stats.SpDefense,
				Speed:     r.Stats.Speed,
			},
		}
		if len(r.Types) == 2 {
			c.SecondaryType = r.Types[1]
		}
		for _, t := range r.Types {
			if !chart.Contains(t) {
				return nil, nil, fmt.Errorf("%w: species %q type %q not in vocabulary",
					ErrContractViolated, r.Name, t)
			}
		}
		species = append(species, c)
	}

	moves := make([]model.Move, 0, len(dex.Moves))
	for _, r := range dex.Moves {
		if !chart.Contains(r.Type) {
			return nil, nil, fmt.Errorf("%w: move %q type %q not in vocabulary",
				ErrContractViolated, r.Name, r.Type)
		}
		switch r.Category {
		case model.Physical, model.Special, model.Status:
		default:
			return nil, nil, fmt.Errorf("%w: move %q category %q",
				ErrMalformed, r.Name, r.Category)
		}
		moves = append(moves, model.Move{
			Name:     r.Name,
			Type:     r.Type,
			Power:    r.Power,
			Accuracy: r.Accuracy,
			Priority: r.Priority,
			Category: r.Category,
		})
	}

	return species, moves, nil
}
