package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"text/template"

	log "github.com/sirupsen/logrus"
)

// TauntValues are available to every taunt template.
type TauntValues struct {
	Player   string
	Computer string
}

// JSONTaunts hands out the computer's one-liners for each round outcome. Within
// an outcome every taunt is used once before any repeats.
type JSONTaunts struct {
	templates map[string][]*template.Template
	indexes   map[string][]int
	sync.Mutex
}

// NewJSONTaunts parses an object mapping outcome keys to lists of taunt
// templates, e.g. {"tie": ["Great minds think alike!"]}.
func NewJSONTaunts(data []byte) (*JSONTaunts, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not parse the taunts data: %w", err)
	}

	jt := &JSONTaunts{
		templates: make(map[string][]*template.Template, len(raw)),
		indexes:   make(map[string][]int, len(raw)),
	}

	for key, taunts := range raw {
		if len(taunts) == 0 {
			return nil, fmt.Errorf("there are no taunts for outcome %q", key)
		}

		for i, taunt := range taunts {
			tmpl, err := template.New(fmt.Sprintf("taunt-%v-%v", key, i)).Parse(taunt)
			if err != nil {
				return nil, fmt.Errorf("unable to parse taunt %q: %w", taunt, err)
			}

			jt.templates[key] = append(jt.templates[key], tmpl)
		}

		jt.generateIndexes(key)
	}

	log.Debugf("created new taunt generator for outcomes %v", jt.Outcomes())
	return jt, nil
}

// GetTaunt renders a taunt for the outcome key. Unknown keys and rendering
// failures produce an empty string.
func (jt *JSONTaunts) GetTaunt(key string, vals TauntValues) string {
	jt.Lock()
	defer jt.Unlock()

	if len(jt.templates[key]) == 0 {
		log.Warnf("no taunts for outcome %v", key)
		return ""
	}

	i, err := GetRandomInt(0, len(jt.indexes[key]))
	if err != nil {
		log.Errorf("could not retrieve random int for picking a taunt: %v", err)
		return ""
	}

	tmpl := jt.templates[key][jt.indexes[key][i]]

	if len(jt.indexes[key]) == 1 {
		jt.generateIndexes(key)
	} else {
		jt.indexes[key] = append(jt.indexes[key][:i], jt.indexes[key][i+1:]...)
	}

	var result bytes.Buffer
	if err := tmpl.Execute(&result, vals); err != nil {
		log.Errorf("error executing taunt template with vals: %v", err)
		return ""
	}

	return result.String()
}

func (jt *JSONTaunts) TauntCount(key string) int {
	return len(jt.templates[key])
}

func (jt *JSONTaunts) Outcomes() []string {
	keys := make([]string, 0, len(jt.templates))
	for k := range jt.templates {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

func (jt *JSONTaunts) generateIndexes(key string) {
	n := len(jt.templates[key])
	jt.indexes[key] = make([]int, n)
	for i := 0; i < n; i++ {
		jt.indexes[key][i] = i
	}
}
