package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"sigs.k8s.io/yaml"

	"github.com/potooio/signpost/internal/types"
)

// outputResult writes the result in the specified format.
func outputResult(w io.Writer, result interface{}, format string) error {
	switch format {
	case "json":
		return outputJSON(w, result)
	case "yaml":
		return outputYAML(w, result)
	default:
		return outputTable(w, result)
	}
}

func outputJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(w io.Writer, result interface{}) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func outputTable(out io.Writer, result interface{}) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch r := result.(type) {
	case ListResult:
		return outputListTable(w, r)
	case GroupsResult:
		return outputGroupsTable(w, r)
	case types.Descriptor:
		return outputDescriptorTable(w, r)
	case AdaptersResult:
		return outputAdaptersTable(w, r)
	default:
		// Fall back to JSON for unknown types
		return outputJSON(out, result)
	}
}

func outputListTable(w *tabwriter.Writer, r ListResult) error {
	fmt.Fprintln(w, "GROUP\tNAME\tLOCATION\tURL\tSOURCE\tOBJECT")
	for _, d := range r.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			d.Group, d.Name, d.Location, d.URL, d.Source, objectRef(d))
	}
	fmt.Fprintf(w, "\nTOTAL\t%d\n", r.Total)
	return nil
}

func outputGroupsTable(w *tabwriter.Writer, r GroupsResult) error {
	for i, g := range r.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", g.Name, len(g.Descriptors))
		for _, d := range g.Descriptors {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", d.Name, d.URL, d.Tags)
		}
	}
	return nil
}

func outputDescriptorTable(w *tabwriter.Writer, d types.Descriptor) error {
	rows := [][2]string{
		{"NAME", d.Name},
		{"GROUP", d.Group},
		{"URL", d.URL},
		{"LOCATION", strconv.Itoa(d.Location)},
		{"ICON", d.Icon},
		{"ICON COLOR", d.IconColor},
		{"INFO", d.Info},
		{"TARGET BLANK", triState(d.TargetBlank)},
		{"ENABLED", triState(d.Enabled)},
		{"TAGS", d.Tags},
		{"SOURCE", d.Source},
		{"OBJECT", objectRef(d)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
	}
	return nil
}

func outputAdaptersTable(w *tabwriter.Writer, r AdaptersResult) error {
	fmt.Fprintln(w, "NAME\tRESOURCE\tKIND\tSERVES")
	for _, a := range r.Adapters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.Resource, a.Kind, a.Serves)
	}
	return nil
}

func objectRef(d types.Descriptor) string {
	if d.Namespace == "" {
		return d.ResourceName
	}
	return d.Namespace + "/" + d.ResourceName
}

// triState renders a *bool as "true", "false" or "" when unset.
func triState(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
