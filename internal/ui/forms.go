package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icarus-itcs/lazydroid/internal/project"
	"github.com/icarus-itcs/lazydroid/internal/sdk"
)

// Fields of the new project form, in tab order
const (
	fieldName = iota
	fieldFolder
	fieldActivity
	fieldPackage
	fieldTarget
)

var fieldLabels = []string{"Name", "Folder", "Activity", "Package", "Target"}

var errNoTargets = errors.New("no build targets available")

// newProjectForm collects the values passed to the android create command
type newProjectForm struct {
	inputs    []textinput.Model
	focus     int
	namespace string

	targets        []sdk.Target
	target         int
	loadingTargets bool
	targetsErr     error
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 48
	return ti
}

func newNewProjectForm(folder, namespace string) newProjectForm {
	f := newProjectForm{
		inputs: []textinput.Model{
			newInput("MyApp"),
			newInput("/path/to/projects"),
			newInput("MyAppActivity"),
			newInput(namespace + ".myapp"),
		},
		namespace:      namespace,
		loadingTargets: true,
	}
	f.inputs[fieldFolder].SetValue(folder)
	f.inputs[fieldName].Focus()
	return f
}

func (f *newProjectForm) name() string {
	return strings.TrimSpace(f.inputs[fieldName].Value())
}

// suggest refills activity and package from the project name
func (f *newProjectForm) suggest() {
	name := f.name()
	if name == "" {
		f.inputs[fieldActivity].SetValue("")
		f.inputs[fieldPackage].SetValue("")
		return
	}
	f.inputs[fieldActivity].SetValue(project.SuggestActivity(name))
	f.inputs[fieldPackage].SetValue(project.SuggestPackage(f.namespace, name))
}

// setTargets installs the loaded targets and preselects preferred by id
func (f *newProjectForm) setTargets(targets []sdk.Target, err error, preferred string) {
	f.loadingTargets = false
	f.targets = targets
	f.targetsErr = err
	f.target = 0
	for i, t := range targets {
		if t.ID() == preferred {
			f.target = i
			break
		}
	}
}

func (f *newProjectForm) setFocus(i int) tea.Cmd {
	n := len(f.inputs) + 1
	f.focus = (i + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *newProjectForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return f.setFocus(f.focus - 1)
	}

	if f.focus == fieldTarget {
		switch msg.String() {
		case "left", "h":
			if f.target > 0 {
				f.target--
			}
		case "right", "l":
			if f.target < len(f.targets)-1 {
				f.target++
			}
		}
		return nil
	}

	before := f.inputs[fieldName].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.focus == fieldName && f.inputs[fieldName].Value() != before {
		f.suggest()
	}
	return cmd
}

// request builds the create request from the form
func (f *newProjectForm) request() (sdk.CreateProjectRequest, error) {
	if len(f.targets) == 0 {
		if f.targetsErr != nil {
			return sdk.CreateProjectRequest{}, f.targetsErr
		}
		return sdk.CreateProjectRequest{}, errNoTargets
	}
	name := f.name()
	r := sdk.CreateProjectRequest{
		Target:   f.targets[f.target].ID(),
		Name:     name,
		Activity: strings.TrimSpace(f.inputs[fieldActivity].Value()),
		Package:  strings.TrimSpace(f.inputs[fieldPackage].Value()),
	}
	if folder := strings.TrimSpace(f.inputs[fieldFolder].Value()); folder != "" && name != "" {
		r.Path = filepath.Join(folder, name)
	}
	return r, r.Validate()
}

func (f *newProjectForm) targetView() string {
	switch {
	case f.loadingTargets:
		return mutedStyle.Render("loading targets...")
	case f.targetsErr != nil:
		return errorStyle.Render(f.targetsErr.Error())
	case len(f.targets) == 0:
		return warnStyle.Render("no build targets installed")
	}
	label := f.targets[f.target].Label()
	if f.focus == fieldTarget {
		return fmt.Sprintf("%s %s %s  %s",
			helpKeyStyle.Render("◀"),
			lipgloss.NewStyle().Foreground(droidMint).Render(label),
			helpKeyStyle.Render("▶"),
			mutedStyle.Render(fmt.Sprintf("%d/%d", f.target+1, len(f.targets))))
	}
	return label
}

func (f *newProjectForm) view() string {
	var lines []string
	for i, label := range fieldLabels {
		style := labelStyle
		if i == f.focus {
			style = focusedLabelStyle
		}
		var value string
		if i == fieldTarget {
			value = f.targetView()
		} else {
			value = f.inputs[i].View()
		}
		lines = append(lines, "  "+style.Render(label)+"  "+value)
	}
	return strings.Join(lines, "\n")
}
