package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// CategorySpec describes one trade category: how to search for it, which
// place tags mark a result as relevant, and how to present it.
type CategorySpec struct {
	Name         string   `yaml:"name"`
	Query        string   `yaml:"query"`
	Display      string   `yaml:"display"`
	Specialties  []string `yaml:"specialties"`
	LicenseType  string   `yaml:"license_type"`
	RelevantTags []string `yaml:"relevant_tags"`
}

// Keywords is the keyword configuration driving discovery and filtering.
// Exclusions and suffixes are configuration data, not code: new regions or
// categories change this document, not the pipeline.
type Keywords struct {
	Categories []CategorySpec `yaml:"categories"`
	// Exclusions are name substrings that mark a result as out of scope
	// (retail chains, training providers, wholesalers).
	Exclusions []string `yaml:"exclusions"`
	// LegalSuffixes are trailing legal/trade words stripped from business
	// names when generating license search terms.
	LegalSuffixes []string `yaml:"legal_suffixes"`
}

// Category returns the spec for the named category, or nil.
func (k *Keywords) Category(name string) *CategorySpec {
	for i := range k.Categories {
		if k.Categories[i].Name == name {
			return &k.Categories[i]
		}
	}
	return nil
}

// LicenseTypes returns the category name to license type mapping.
func (k *Keywords) LicenseTypes() map[string]string {
	m := make(map[string]string, len(k.Categories))
	for _, c := range k.Categories {
		m[c.Name] = c.LicenseType
	}
	return m
}

// LoadKeywords reads keyword configuration from a YAML file. An empty path
// returns the compiled-in defaults.
func LoadKeywords(path string) (*Keywords, error) {
	if path == "" {
		return DefaultKeywords(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read keywords %s", path)
	}

	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return nil, eris.Wrap(err, "config: parse keywords")
	}
	if len(kw.Categories) == 0 {
		return nil, eris.Errorf("config: keywords %s defines no categories", path)
	}

	return &kw, nil
}

// DefaultKeywords returns the built-in Perth trade categories.
func DefaultKeywords() *Keywords {
	return &Keywords{
		Categories: []CategorySpec{
			{
				Name:        "electrician",
				Query:       "electrician",
				Display:     "Electrician",
				LicenseType: "EC",
				Specialties: []string{
					"Residential wiring",
					"Switchboard upgrades",
					"Safety switches",
					"LED lighting",
				},
				RelevantTags: []string{"electrician", "electrical_contractor"},
			},
			{
				Name:        "plumber",
				Query:       "plumber",
				Display:     "Plumber",
				LicenseType: "PL",
				Specialties: []string{
					"Blocked drains",
					"Hot water systems",
					"Leak detection",
					"Bathroom renovations",
				},
				RelevantTags: []string{"plumber", "plumbing"},
			},
			{
				Name:        "gas_fitter",
				Query:       "gas fitter",
				Display:     "Gas Fitter",
				LicenseType: "GF",
				Specialties: []string{
					"Gas appliance installation",
					"Gas leak repairs",
					"Gas compliance certificates",
					"BBQ and bayonet points",
				},
				RelevantTags: []string{"plumber", "gas_fitter", "gas_company"},
			},
		},
		Exclusions: []string{
			"bunnings",
			"mitre 10",
			"reece",
			"tafe",
			"training",
			"college",
			"institute",
			"academy",
			"wholesale",
			"supplies",
			"warehouse",
		},
		LegalSuffixes: []string{
			"pty ltd",
			"pty. ltd.",
			"pty",
			"ltd",
			"limited",
			"co",
			"group",
			"services",
			"service",
			"electrical",
			"electrics",
			"plumbing",
			"gas",
			"gasfitting",
			"contractors",
			"contracting",
		},
	}
}
