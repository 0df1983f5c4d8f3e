package output

import (
	"encoding/json"

	"github.com/optimach/optimach/internal/domain"
)

// JSONFormatter emits the whole analysis result as JSON.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(result *domain.AnalysisResult) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
