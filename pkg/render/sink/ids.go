package sink

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// defsNamespace scopes the name-based UUIDs used for definition ids.
var defsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/luminexlabs/lumenviz/defs"))

// defsPrefix derives a short stable prefix from the render seed and the
// scene's shape: the same scene and seed always yield the same ids.
func defsPrefix(sc *scene.Scene, seed uint64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s|%s|%d", seed, scene.Num(sc.Width), scene.Num(sc.Height), len(sc.Elements))
	for _, g := range sc.Gradients {
		b.WriteString("|" + g.ID)
	}
	if len(sc.Elements) > 0 {
		first := sc.Elements[0]
		fmt.Fprintf(&b, "|%s|%s", first.Kind(), first.Attrs().Class)
	}
	id := uuid.NewSHA1(defsNamespace, []byte(b.String()))
	return "lv" + strings.ReplaceAll(id.String(), "-", "")[:8]
}

// idMap resolves scene-level gradient ids and blur amounts to namespaced
// document ids.
type idMap struct {
	prefix    string
	gradients map[string]string
	blurs     map[float64]string
}

func newIDMap(sc *scene.Scene, prefix string) *idMap {
	m := &idMap{prefix: prefix, gradients: map[string]string{}, blurs: map[float64]string{}}
	for _, g := range sc.Gradients {
		m.gradients[g.ID] = prefix + "-" + g.ID
	}
	for _, e := range sc.Elements {
		if b := e.Attrs().Blur; b > 0 {
			if _, ok := m.blurs[b]; !ok {
				m.blurs[b] = fmt.Sprintf("%s-blur-%d", prefix, len(m.blurs))
			}
		}
	}
	return m
}

func (m *idMap) gradient(id string) (string, bool) {
	v, ok := m.gradients[id]
	return v, ok
}
