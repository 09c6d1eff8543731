package recommend

import (
	"path/filepath"
	"sort"
)

// programFiles maps a training goal to its PDF filename
var programFiles = map[string]string{
	"muscle_building": "muscle_building.pdf",
	"weight_loss":     "weight_loss.pdf",
	"general_fitness": "general_fitness.pdf",
	"home_workout":    "home_workout.pdf",
}

// ProgramCatalog resolves training goals to PDF files on disk
type ProgramCatalog struct {
	dir string
}

func NewProgramCatalog(dir string) *ProgramCatalog {
	return &ProgramCatalog{dir: dir}
}

// Goals lists the available training program goals
func (c *ProgramCatalog) Goals() []string {
	goals := make([]string, 0, len(programFiles))
	for goal := range programFiles {
		goals = append(goals, goal)
	}
	sort.Strings(goals)
	return goals
}

// Resolve returns the file path for a goal, or false when unknown
func (c *ProgramCatalog) Resolve(goal string) (string, bool) {
	name, ok := programFiles[goal]
	if !ok {
		return "", false
	}
	return filepath.Join(c.dir, name), true
}
