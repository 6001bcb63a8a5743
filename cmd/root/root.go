package root

import (
	"github.com/spf13/cobra"

	"github.com/flotilla-solver/flotilla/cmd/battleship"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flotilla",
		Short: "Flotilla is an open-source finite-domain constraint solver",
		Long: `An open-source finite-domain constraint solver written in Go.
It enumerates all assignments consistent with a set of table and
cardinality constraints using arc-consistency propagation and
backtracking search.`,
	}

	// add sub-commands
	rootCmd.AddCommand(battleship.NewBattleshipCommand())

	return rootCmd
}
