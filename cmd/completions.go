package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/countdown/internal/model"
)

// completeUnits completes a comma-separated unit list, offering only units
// not yet listed.
func completeUnits(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	partial := toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
		partial = toComplete[i+1:]
	}

	used := make(map[string]bool)
	for _, name := range strings.Split(prefix, ",") {
		used[strings.TrimSpace(name)] = true
	}

	var completions []string
	for _, u := range model.Units {
		name := u.String()
		if used[name] || !strings.HasPrefix(name, partial) {
			continue
		}
		completions = append(completions, prefix+name)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeFixed returns a completion function over a fixed set of values.
func completeFixed(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var completions []string
		for _, v := range values {
			if strings.HasPrefix(strings.Split(v, "\t")[0], toComplete) {
				completions = append(completions, v)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeWhen suggests target forms for 'target set' and --at.
func completeWhen(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeFixed(
		"+76d\t76 days from now",
		"+2w\ttwo weeks from now",
		"+12h\ttwelve hours from now",
		"tomorrow\ttomorrow at this time",
		"next monday 9am\tnatural language",
	)(cmd, args, toComplete)
}
