// Package importer loads a YAML catalog file into a running server through
// the REST API.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the YAML document. Keys are local names used to reference entries
// from other sections; they are never sent to the server.
type File struct {
	RelationTypes     []RelationType     `yaml:"relationTypes"`
	Publications      []Publication      `yaml:"publications"`
	SoftwarePlatforms []SoftwarePlatform `yaml:"softwarePlatforms"`
	Algorithms        []Algorithm        `yaml:"algorithms"`
	Relations         []Relation         `yaml:"relations"`
}

type RelationType struct {
	Name            string `yaml:"name" json:"name"`
	InverseTypeName string `yaml:"inverseTypeName" json:"inverseTypeName,omitempty"`
}

type Publication struct {
	Key     string   `yaml:"key" json:"-"`
	Title   string   `yaml:"title" json:"title"`
	URL     string   `yaml:"url" json:"url,omitempty"`
	DOI     string   `yaml:"doi" json:"doi,omitempty"`
	Authors []string `yaml:"authors" json:"authors"`
}

type SoftwarePlatform struct {
	Key     string `yaml:"key" json:"-"`
	Name    string `yaml:"name" json:"name"`
	Link    string `yaml:"link" json:"link,omitempty"`
	Licence string `yaml:"licence" json:"licence,omitempty"`
	Version string `yaml:"version" json:"version,omitempty"`
}

type Algorithm struct {
	Key                     string `yaml:"key" json:"-"`
	Name                    string `yaml:"name" json:"name"`
	Acronym                 string `yaml:"acronym" json:"acronym,omitempty"`
	Intent                  string `yaml:"intent" json:"intent,omitempty"`
	Problem                 string `yaml:"problem" json:"problem,omitempty"`
	ComputationModel        string `yaml:"computationModel" json:"computationModel"`
	QuantumComputationModel string `yaml:"quantumComputationModel" json:"quantumComputationModel,omitempty"`
	NisqReady               *bool  `yaml:"nisqReady" json:"nisqReady,omitempty"`
	SpeedUp                 string `yaml:"speedUp" json:"speedUp,omitempty"`

	Publications    []string         `yaml:"publications" json:"-"`
	Tags            []string         `yaml:"tags" json:"-"`
	Implementations []Implementation `yaml:"implementations" json:"-"`
}

type Implementation struct {
	Name              string   `yaml:"name" json:"name"`
	Description       string   `yaml:"description" json:"description,omitempty"`
	Technology        string   `yaml:"technology" json:"technology,omitempty"`
	Version           string   `yaml:"version" json:"version,omitempty"`
	License           string   `yaml:"license" json:"license,omitempty"`
	SoftwarePlatforms []string `yaml:"softwarePlatforms" json:"-"`
}

type Relation struct {
	Source      string `yaml:"source"`
	Target      string `yaml:"target"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// API is the subset of the REST client the importer needs.
type API interface {
	Create(ctx context.Context, path string, body any) (string, error)
	Post(ctx context.Context, path string, body any) error
}

// Result counts what was sent to the server.
type Result struct {
	RelationTypes     int
	Publications      int
	SoftwarePlatforms int
	Algorithms        int
	Implementations   int
	Links             int
	Relations         int
}

// Read parses a catalog file from path.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a catalog document and checks its references.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks required fields, key uniqueness and that every reference
// points at an entry of the file.
func (f *File) Validate() error {
	var errs []error
	keys := func(section string, n int, key func(int) string) map[string]bool {
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			k := key(i)
			if k == "" {
				errs = append(errs, fmt.Errorf("%s[%d]: key is required", section, i))
				continue
			}
			if seen[k] {
				errs = append(errs, fmt.Errorf("%s[%d]: duplicate key %q", section, i, k))
			}
			seen[k] = true
		}
		return seen
	}

	pubs := keys("publications", len(f.Publications), func(i int) string { return f.Publications[i].Key })
	platforms := keys("softwarePlatforms", len(f.SoftwarePlatforms), func(i int) string { return f.SoftwarePlatforms[i].Key })
	algs := keys("algorithms", len(f.Algorithms), func(i int) string { return f.Algorithms[i].Key })

	for i, a := range f.Algorithms {
		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, fmt.Errorf("algorithms[%d]: name is required", i))
		}
		if a.ComputationModel == "" {
			errs = append(errs, fmt.Errorf("algorithms[%d]: computationModel is required", i))
		}
		for _, p := range a.Publications {
			if !pubs[p] {
				errs = append(errs, fmt.Errorf("algorithms[%d]: unknown publication %q", i, p))
			}
		}
		for j, impl := range a.Implementations {
			for _, sp := range impl.SoftwarePlatforms {
				if !platforms[sp] {
					errs = append(errs, fmt.Errorf("algorithms[%d].implementations[%d]: unknown software platform %q", i, j, sp))
				}
			}
		}
	}
	for i, r := range f.Relations {
		if !algs[r.Source] {
			errs = append(errs, fmt.Errorf("relations[%d]: unknown source %q", i, r.Source))
		}
		if !algs[r.Target] {
			errs = append(errs, fmt.Errorf("relations[%d]: unknown target %q", i, r.Target))
		}
		if r.Type == "" {
			errs = append(errs, fmt.Errorf("relations[%d]: type is required", i))
		}
	}
	return errors.Join(errs...)
}

// Importer sends a validated file to the server, reporting progress to out.
type Importer struct {
	api API
	out io.Writer
}

func New(api API, out io.Writer) *Importer {
	if out == nil {
		out = io.Discard
	}
	return &Importer{api: api, out: out}
}

// Run creates every entry in dependency order: relation types, publications
// and platforms first, then algorithms with their links and implementations,
// then relations. It stops at the first failing request.
func (im *Importer) Run(ctx context.Context, f *File) (Result, error) {
	var res Result

	for _, t := range f.RelationTypes {
		if _, err := im.api.Create(ctx, "/api/v1/algorithm-relation-types", t); err != nil {
			return res, fmt.Errorf("relation type %q: %w", t.Name, err)
		}
		res.RelationTypes++
	}

	pubIDs := make(map[string]string, len(f.Publications))
	for _, p := range f.Publications {
		if p.Authors == nil {
			p.Authors = []string{}
		}
		id, err := im.api.Create(ctx, "/api/v1/publications", p)
		if err != nil {
			return res, fmt.Errorf("publication %q: %w", p.Key, err)
		}
		pubIDs[p.Key] = id
		res.Publications++
	}

	platformIDs := make(map[string]string, len(f.SoftwarePlatforms))
	for _, sp := range f.SoftwarePlatforms {
		id, err := im.api.Create(ctx, "/api/v1/software-platforms", sp)
		if err != nil {
			return res, fmt.Errorf("software platform %q: %w", sp.Key, err)
		}
		platformIDs[sp.Key] = id
		res.SoftwarePlatforms++
	}

	algIDs := make(map[string]string, len(f.Algorithms))
	for _, a := range f.Algorithms {
		id, err := im.algorithm(ctx, a, pubIDs, platformIDs, &res)
		if err != nil {
			return res, fmt.Errorf("algorithm %q: %w", a.Key, err)
		}
		algIDs[a.Key] = id
		fmt.Fprintf(im.out, "algorithm %s -> %s\n", a.Key, id)
	}

	for _, r := range f.Relations {
		src, dst := algIDs[r.Source], algIDs[r.Target]
		body := map[string]any{
			"sourceAlgorithmId": src,
			"targetAlgorithmId": dst,
			"algoRelationType":  map[string]string{"name": r.Type},
			"description":       r.Description,
		}
		if _, err := im.api.Create(ctx, "/api/v1/algorithms/"+src+"/algorithm-relations", body); err != nil {
			return res, fmt.Errorf("relation %s -[%s]-> %s: %w", r.Source, r.Type, r.Target, err)
		}
		res.Relations++
	}

	return res, nil
}

func (im *Importer) algorithm(ctx context.Context, a Algorithm, pubIDs, platformIDs map[string]string, res *Result) (string, error) {
	id, err := im.api.Create(ctx, "/api/v1/algorithms", a)
	if err != nil {
		return "", err
	}
	res.Algorithms++
	base := "/api/v1/algorithms/" + id

	for _, p := range a.Publications {
		if err := im.api.Post(ctx, base+"/publications", map[string]string{"id": pubIDs[p]}); err != nil {
			return id, fmt.Errorf("link publication %q: %w", p, err)
		}
		res.Links++
	}
	for _, tag := range a.Tags {
		if err := im.api.Post(ctx, base+"/tags", map[string]string{"value": tag}); err != nil {
			return id, fmt.Errorf("tag %q: %w", tag, err)
		}
		res.Links++
	}
	for _, impl := range a.Implementations {
		implID, err := im.api.Create(ctx, base+"/implementations", impl)
		if err != nil {
			return id, fmt.Errorf("implementation %q: %w", impl.Name, err)
		}
		res.Implementations++
		for _, sp := range impl.SoftwarePlatforms {
			if err := im.api.Post(ctx, "/api/v1/implementations/"+implID+"/software-platforms",
				map[string]string{"id": platformIDs[sp]}); err != nil {
				return id, fmt.Errorf("implementation %q: link software platform %q: %w", impl.Name, sp, err)
			}
			res.Links++
		}
	}
	return id, nil
}
