// Command gen writes the component and system set exercised by ecs-stress.
//
//	go run ./gen -components 32 -systems 16 -out generated.go
package main

import (
	"bytes"
	"flag"
	"os"
	"text/template"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/tools/imports"
)

type component struct {
	Index  int
	Sparse bool
}

type system struct {
	Index int
	In    int
	Out   int
	Churn bool
}

type model struct {
	Components []component
	Systems    []system
}

// newModel lays out n components, every fourth one sparse, and m systems.
// System i reads component i and writes component i+1; every fifth system
// instead recycles one entity per frame through commands.
func newModel(n, m int) model {
	var md model
	for i := range n {
		md.Components = append(md.Components, component{Index: i, Sparse: i%4 == 3})
	}
	for i := range m {
		md.Systems = append(md.Systems, system{
			Index: i,
			In:    i % n,
			Out:   (i + 1) % n,
			Churn: i%5 == 4,
		})
	}
	return md
}

const source = `// Code generated by ecs-stress/gen; DO NOT EDIT.

package main

import (
	"math/rand/v2"

	"github.com/plus3/archstore/ecs"
)

const (
	componentCount = {{len .Components}}
	systemCount    = {{len .Systems}}
)
{{range .Components}}
type Component{{.Index}} struct {
	Value float64
}
{{end}}
func RegisterAllGeneratedComponents(c *ecs.Components) error {
{{- range .Components}}
{{- if .Sparse}}
	if _, err := ecs.RegisterSparseComponent[Component{{.Index}}](c); err != nil {
		return err
	}
{{- else}}
	ecs.RegisterComponent[Component{{.Index}}](c)
{{- end}}
{{- end}}
	return nil
}

var componentFactories = [componentCount]func(rng *rand.Rand) any{
{{- range .Components}}
	func(rng *rand.Rand) any { return Component{{.Index}}{Value: rng.Float64()} },
{{- end}}
}

// SpawnRandomEntity spawns an entity holding numComponents random components.
func SpawnRandomEntity(w *ecs.World, rng *rand.Rand, numComponents int) ecs.Entity {
	components := make([]any, 0, numComponents)
	for range numComponents {
		components = append(components, componentFactories[rng.IntN(componentCount)](rng))
	}
	return w.Spawn(components...)
}
{{range .Systems}}{{if .Churn}}
type System{{.Index}} struct {
	Query ecs.Query[struct {
		In *Component{{.In}}
	}]
}

func (s *System{{.Index}}) Execute(frame *ecs.UpdateFrame) {
	budget := 1
	for e, row := range s.Query.Iter() {
		if budget == 0 {
			break
		}
		budget--
		frame.Commands.Despawn(e)
		frame.Commands.Spawn(Component{{.In}}{Value: row.In.Value})
	}
}
{{else}}
type System{{.Index}} struct {
	Query ecs.Query[struct {
		In  *Component{{.In}}
		Out *Component{{.Out}} ` + "`ecs:\"mut\"`" + `
	}]
}

func (s *System{{.Index}}) Execute(frame *ecs.UpdateFrame) {
	for row := range s.Query.Values() {
		row.Out.Value += row.In.Value * frame.DeltaTime
	}
}
{{end}}{{end}}
func RegisterAllGeneratedSystems(s *ecs.Scheduler) error {
{{- range .Systems}}
	if err := s.Register(&System{{.Index}}{}); err != nil {
		return err
	}
{{- end}}
	return nil
}
`

var tmpl = template.Must(template.New("generated").Parse(source))

// generate renders the model and runs it through goimports.
func generate(filename string, md model) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, md); err != nil {
		return nil, eris.Wrap(err, "render template")
	}
	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, eris.Wrap(err, "format generated source")
	}
	return out, nil
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	components := flag.Int("components", 32, "number of component types to generate")
	systems := flag.Int("systems", 16, "number of systems to generate")
	out := flag.String("out", "generated.go", "output file")
	flag.Parse()

	if *components < 2 || *systems < 1 {
		logger.Fatal().Int("components", *components).Int("systems", *systems).Msg("need at least two components and one system")
	}

	src, err := generate(*out, newModel(*components, *systems))
	if err != nil {
		logger.Fatal().Err(err).Msg("generation failed")
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		logger.Fatal().Err(err).Str("file", *out).Msg("write failed")
	}
	logger.Info().Str("file", *out).Int("components", *components).Int("systems", *systems).Msg("generated")
}
