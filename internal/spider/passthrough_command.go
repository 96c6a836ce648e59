package spider

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	passthroughCommandNameConstant             = "spider"
	passthroughCommandShortDescriptionConstant = "Run the crawler launcher with raw arguments"
	passthroughCommandLongDescriptionConstant  = "spider forwards its arguments verbatim to the configured crawler launcher for operations the wrapper does not model."
)

// PassthroughCommandBuilder assembles the spider cobra command.
type PassthroughCommandBuilder struct {
	CommandBuilderBase
}

// Build constructs the cobra command forwarding raw arguments to the launcher.
func (builder *PassthroughCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:                passthroughCommandNameConstant,
		Short:              passthroughCommandShortDescriptionConstant,
		Long:               passthroughCommandLongDescriptionConstant,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               builder.run,
	}

	return command, nil
}

func (builder *PassthroughCommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	service, serviceError := builder.resolveService(logger, configuration, "")
	if serviceError != nil {
		return serviceError
	}

	executionResult, executionError := service.Passthrough(command.Context(), arguments)
	if len(executionResult.StandardOutput) > 0 {
		fmt.Fprint(command.OutOrStdout(), executionResult.StandardOutput)
	}
	if len(executionResult.StandardError) > 0 {
		fmt.Fprint(command.ErrOrStderr(), executionResult.StandardError)
	}
	return executionError
}
