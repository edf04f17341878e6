// Package publish renders the store's contents into the static site: an
// index page plus the JSON document the page consumes. It performs no
// filtering; the store's tradies are embedded verbatim.
package publish

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ropnep/trustedtrades/internal/config"
	"github.com/ropnep/trustedtrades/internal/tradie"
)

//go:embed template/index.html.tmpl
var indexTemplate string

var titleCaser = cases.Title(language.English)

// Publisher writes the static site for a store document.
type Publisher struct {
	outputDir string
	region    config.RegionConfig
	kw        *config.Keywords
	tmpl      *template.Template
}

// New creates a Publisher writing into outputDir.
func New(outputDir string, region config.RegionConfig, kw *config.Keywords) (*Publisher, error) {
	tmpl, err := template.New("index").Funcs(template.FuncMap{
		"deref": func(b *bool) bool { return b != nil && *b },
	}).Parse(indexTemplate)
	if err != nil {
		return nil, eris.Wrap(err, "publish: parse template")
	}
	return &Publisher{
		outputDir: outputDir,
		region:    region,
		kw:        kw,
		tmpl:      tmpl,
	}, nil
}

type card struct {
	Name        string
	Category    string
	Phone       string
	Website     string
	Address     string
	Description string
	Rating      float64
	HasRating   bool
	ReviewCount int
	Areas       string
	Specialties []string
	Licensed    *bool
	LicenseNo   string
}

type section struct {
	Title string
	Cards []card
}

type pageData struct {
	Region      config.RegionConfig
	GeneratedAt string
	Total       int
	Stats       tradie.VerificationStats
	Sections    []section
	DataJSON    template.JS
}

// Publish writes index.html and tradies.json into the output directory.
func (p *Publisher) Publish(doc tradie.Document) error {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return eris.Wrapf(err, "publish: create %s", p.outputDir)
	}

	data, err := p.pageData(doc)
	if err != nil {
		return err
	}

	var out strings.Builder
	if err := p.tmpl.Execute(&out, data); err != nil {
		return eris.Wrap(err, "publish: render index")
	}
	indexPath := filepath.Join(p.outputDir, "index.html")
	if err := os.WriteFile(indexPath, []byte(out.String()), 0o644); err != nil {
		return eris.Wrapf(err, "publish: write %s", indexPath)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "publish: marshal document")
	}
	jsonPath := filepath.Join(p.outputDir, "tradies.json")
	if err := os.WriteFile(jsonPath, append(raw, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "publish: write %s", jsonPath)
	}

	return nil
}

func (p *Publisher) pageData(doc tradie.Document) (*pageData, error) {
	embedded, err := json.Marshal(doc.Tradies)
	if err != nil {
		return nil, eris.Wrap(err, "publish: marshal tradies")
	}
	// Keep the inline data block from terminating the script element early.
	safe := strings.ReplaceAll(string(embedded), "</", `<\/`)

	data := &pageData{
		Region:      p.region,
		GeneratedAt: doc.LastUpdated.Format(time.RFC1123),
		Total:       len(doc.Tradies),
		Stats:       doc.LicenseVerificationStats,
		DataJSON:    template.JS(safe),
	}

	byCategory := make(map[string][]card)
	for _, t := range doc.Tradies {
		byCategory[t.Category] = append(byCategory[t.Category], p.card(t))
	}

	// Sections follow keyword-config category order; unknown categories
	// trail in name order via the map guard below.
	for _, cat := range p.kw.Categories {
		cards, ok := byCategory[cat.Name]
		if !ok {
			continue
		}
		data.Sections = append(data.Sections, section{
			Title: p.categoryDisplay(cat.Name),
			Cards: cards,
		})
		delete(byCategory, cat.Name)
	}
	for name, cards := range byCategory {
		data.Sections = append(data.Sections, section{
			Title: p.categoryDisplay(name),
			Cards: cards,
		})
	}

	return data, nil
}

// card resolves display defaults: optional fields render category-appropriate
// text, never an empty or null value.
func (p *Publisher) card(t tradie.Tradie) card {
	c := card{
		Name:        t.Name,
		Category:    t.Category,
		Phone:       t.Phone,
		Website:     t.Website,
		Address:     t.Address,
		Description: t.Description,
		Rating:      t.Rating,
		HasRating:   t.Rating > 0,
		ReviewCount: t.ReviewCount,
		Areas:       strings.Join(t.Areas, ", "),
		Specialties: t.Specialties,
		Licensed:    t.Licensed,
		LicenseNo:   t.LicenseNumber,
	}
	if c.Phone == "" {
		c.Phone = "Phone on enquiry"
	}
	if c.Address == "" {
		c.Address = fmt.Sprintf("Servicing the %s area", p.region.MetroArea)
	}
	if c.Areas == "" {
		c.Areas = p.region.MetroArea
	}
	return c
}

func (p *Publisher) categoryDisplay(name string) string {
	if cat := p.kw.Category(name); cat != nil && cat.Display != "" {
		return cat.Display
	}
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}
