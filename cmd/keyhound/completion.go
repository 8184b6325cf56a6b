package keyhound

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "completion <shell>",
		Short:     "Print a tab-completion script for your shell",
		Long:      "Print a tab-completion script for bash, zsh, fish, or powershell. Source the output from your shell profile, or write it into the shell's completions directory to install it permanently.",
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return fmt.Errorf("unsupported shell: %s", args[0])
		},
		Example: `  # load for the current bash session
  source <(keyhound completion bash)

  # install permanently for zsh
  keyhound completion zsh > "${fpath[1]}/_keyhound"

  # install permanently for fish
  keyhound completion fish > ~/.config/fish/completions/keyhound.fish`,
	}
	rootCmd.AddCommand(cmd)
}
