package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/npillmayer/vstyle/errors"
	"github.com/npillmayer/vstyle/mark"
	"github.com/npillmayer/vstyle/markspec"
	"github.com/npillmayer/vstyle/model"
	"github.com/npillmayer/vstyle/scale"
	"github.com/npillmayer/vstyle/theme"
)

// workspace holds the marks built from a mark spec document.
type workspace struct {
	theme    *theme.Theme
	doc      *markspec.Document
	scales   *scale.Registry
	registry *mark.Registry
	marks    []*mark.Mark // in document order, referred marks first
}

// loadWorkspace loads a theme and a mark spec document and builds the marks.
func loadWorkspace(logger *log.Logger, in inputFlags) (*workspace, error) {
	ws := &workspace{
		scales:   scale.NewRegistry(),
		registry: mark.NewRegistry(),
	}
	var err error
	if in.theme == "" {
		ws.theme = theme.Default()
	} else if ws.theme, err = theme.Load(in.theme); err != nil {
		return nil, err
	}
	logger.Debug("theme loaded", "name", ws.theme.Name)
	if ws.doc, err = markspec.Load(in.spec); err != nil {
		return nil, err
	}
	logger.Debug("mark spec loaded", "path", in.spec, "marks", len(ws.doc.Marks))
	ws.registerScales(logger)
	owner, seriesID := ws.owner()
	byName := make(map[string]*mark.Mark, len(ws.doc.Marks))
	for _, name := range ws.doc.MarkNames() {
		spec := ws.doc.Marks[name]
		typ, ok := mark.LookupType(spec.Type)
		if !ok {
			logger.Debug("unknown mark type, using a plain type", "mark", name, "type", spec.Type)
			typ = mark.NewType(spec.Type)
		}
		m := mark.New(name, typ, mark.Option{
			Model:       owner,
			Registry:    ws.registry,
			GlobalScale: ws.scales,
			SeriesID:    seriesID,
		})
		m.InitStyleWithSpec(spec)
		if spec.Referer != "" {
			if target := byName[spec.Referer]; target != nil {
				delegate(m, target)
			} else {
				logger.Warn("referer cycle, ignoring referer", "mark", name, "referer", spec.Referer)
			}
		}
		byName[name] = m
		ws.marks = append(ws.marks, m)
	}
	return ws, nil
}

// delegate makes every attribute m has or target has, in every state of
// target, refer to target.
func delegate(m, target *mark.Mark) {
	m.SetReferer(target, "", "")
	tt := target.Table()
	for _, state := range tt.States() {
		for _, attr := range tt.Attributes(state) {
			m.SetReferer(target, attr, state)
		}
	}
}

// registerScales creates the document's named scales and the series'
// color scale, registered as "color".
func (ws *workspace) registerScales(logger *log.Logger) {
	ids := make([]string, 0, len(ws.doc.Scales))
	for id := range ws.doc.Scales {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		rec, ok := ws.doc.Scales[id].(map[string]any)
		if !ok {
			logger.Warn("ignoring malformed scale", "id", id)
			continue
		}
		spec, ok := scale.ParseVisualSpec(rec)
		if !ok || spec.Type == "" {
			logger.Warn("ignoring scale without valid type", "id", id)
			continue
		}
		if s := scale.FromSpec(spec, scale.Options{}); s != nil {
			ws.scales.Register(id, s)
		}
	}
}

// owner creates the series owning the marks, if the document has one.
func (ws *workspace) owner() (mark.Model, string) {
	ss := ws.doc.Series
	if ss == nil {
		return &model.Component{Name: "chart", Scheme: ws.theme.Scheme()}, ""
	}
	series := model.NewSeries(ss.ID, ss.Type, ws.theme.Scheme(), ss.ColorField, ss.ColorDomain)
	if len(ss.ColorRange) > 0 {
		rng := make([]any, len(ss.ColorRange))
		for i, c := range ss.ColorRange {
			rng[i] = c
		}
		series.ColorScale.SetRange(rng)
	}
	if _, exists := ws.scales.Scale("color"); !exists {
		ws.scales.Register("color", series.ColorScale)
	}
	return series, ss.ID
}

// selectMarks returns the marks named in names, or all marks if names is
// empty.
func (ws *workspace) selectMarks(names []string) ([]*mark.Mark, error) {
	if len(names) == 0 {
		return ws.marks, nil
	}
	selected := make([]*mark.Mark, 0, len(names))
	for _, name := range names {
		m, ok := ws.registry.Find(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "no mark named %q", name)
		}
		selected = append(selected, m)
	}
	return selected, nil
}

// loadData reads a dataset: a JSON array of objects.
func loadData(path string) ([]mark.Datum, error) {
	if path == "" {
		return []mark.Datum{{}}, nil
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported dataset format %q, expected JSON", ext)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data []mark.Datum
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "dataset %s is not a JSON array of objects", path)
	}
	return data, nil
}
