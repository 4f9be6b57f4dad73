package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	m "counterpart.dev/pkg/counterpart/internal/model"
)

const (
	statusFound   = "found"
	statusMissing = "missing"
)

type resolutionDoc struct {
	Source             string   `yaml:"source"`
	Area               string   `yaml:"area"`
	Convention         string   `yaml:"convention"`
	Role               string   `yaml:"counterpart_role"`
	Found              bool     `yaml:"found"`
	Path               string   `yaml:"path,omitempty"`
	Matches            []string `yaml:"matches,omitempty"`
	SuggestedDirectory string   `yaml:"suggested_directory,omitempty"`
	SuggestedFileName  string   `yaml:"suggested_file,omitempty"`
}

func renderResolutionYAML(resolution Resolution) (string, error) {
	doc := resolutionDoc{
		Source:     string(resolution.Spec.Source.FullPath()),
		Area:       string(resolution.Spec.Source.Area),
		Convention: string(resolution.Spec.Convention),
		Role:       string(resolution.Spec.TargetRole),
		Found:      resolution.Result.Found,
	}

	if resolution.Result.Found {
		doc.Path = string(resolution.Result.Path)

		if len(resolution.Result.Matches) > 1 {
			for _, match := range resolution.Result.Matches {
				doc.Matches = append(doc.Matches, string(match))
			}
		}
	} else {
		doc.SuggestedDirectory = string(resolution.Result.SuggestedDirectory)
		doc.SuggestedFileName = resolution.Result.SuggestedFileName
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode resolution: %w", err)
	}

	return string(out), nil
}

func renderResolutionText(resolution Resolution) string {
	var b strings.Builder

	spec := resolution.Spec
	fmt.Fprintf(&b, "source:      %s (%s)\n", spec.Source.FullPath(), spec.Source.Area)

	if resolution.Result.Found {
		fmt.Fprintf(&b, "counterpart: %s (%s)\n", resolution.Result.Path, statusFound)
	} else {
		fmt.Fprintf(&b, "counterpart: %s (%s)\n", resolution.Result.SuggestedPath(), statusMissing)
	}

	fmt.Fprintf(&b, "convention:  %s\n", spec.Convention)

	return b.String()
}

func renderPairsTable(pairs []m.Pair) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Source", "Counterpart", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	missing := 0

	for _, pair := range pairs {
		status := statusFound
		if !pair.Exists {
			status = statusMissing
			missing++
		}

		table.Append([]string{string(pair.Source), string(pair.Counterpart), status})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(pairs)),
		"",
		fmt.Sprintf("%d missing", missing),
	})

	table.Render()

	return tableBuffer.String()
}

// isAffirmative accepts the affirmative label, its first letter, and y/yes.
func isAffirmative(answer, affirmative string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return false
	}

	label := strings.ToLower(affirmative)

	if answer == "y" || answer == "yes" {
		return true
	}

	return label != "" && (answer == label || answer == label[:1])
}
