package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mikhailv/number-feed/internal/log"
	"github.com/mikhailv/number-feed/internal/util"
)

func (s *HTTPServer) filterLogs(_ *http.Request, query url.Values) FilterFunc[log.Entry] {
	var levels util.Set[string]
	for _, level := range strings.Split(query.Get("level"), ",") {
		if level = strings.TrimSpace(level); level != "" {
			levels.Add(strings.ToUpper(level))
		}
	}
	if levels.Size() == 0 {
		return nil
	}
	return func(val log.Entry) bool {
		return levels.Has(val.Level)
	}
}
