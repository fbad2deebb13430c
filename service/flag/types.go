package flag

import (
	"io"

	"github.com/thirukguru/aws-list-all/model"
)

type service struct {
	out io.Writer
}

// Service parses the arguments of each subcommand.
type Service interface {
	ParseQuery(args []string, defaults model.QueryFlags, html bool) (model.QueryFlags, error)
	ParseShow(args []string) (model.ShowFlags, error)
	ParseIntrospect(args []string) (model.IntrospectFlags, error)
	ParseCaches(args []string) (model.CacheFlags, error)
	ParseHistory(args []string) (model.HistoryFlags, error)
}
