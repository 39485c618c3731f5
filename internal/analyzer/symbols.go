package analyzer

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Tomas-vilte/CommitSage/internal/domain/models"
)

// symbolRule maps one regular expression to the kind of symbol its
// first capture group names.
type symbolRule struct {
	re   *regexp.Regexp
	kind models.SymbolKind
}

var symbolRulesByExt = map[string][]symbolRule{
	".go": {
		{regexp.MustCompile(`^func\s+\([^)]+\)\s+(\w+)\s*\(`), models.SymbolMethod},
		{regexp.MustCompile(`^func\s+(\w+)\s*[\(\[]`), models.SymbolFunction},
		{regexp.MustCompile(`^type\s+(\w+)\s`), models.SymbolClass},
		{regexp.MustCompile(`^const\s+(\w+)\s*=`), models.SymbolConst},
	},
	".ts":  jsRules,
	".tsx": jsRules,
	".js":  jsRules,
	".jsx": jsRules,
	".py": {
		{regexp.MustCompile(`^\s*def\s+(\w+)\s*\(`), models.SymbolFunction},
		{regexp.MustCompile(`^\s*class\s+(\w+)\s*[:\(]`), models.SymbolClass},
	},
	".java": {
		{regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:static\s+)?(?:final\s+)?(?:class|interface|enum)\s+(\w+)`), models.SymbolClass},
		{regexp.MustCompile(`^\s*(?:public|private|protected)\s+[\w<>\[\]]+\s+(\w+)\s*\(`), models.SymbolMethod},
	},
	".rs": {
		{regexp.MustCompile(`^\s*(?:pub\s+)?fn\s+(\w+)\s*[\(<]`), models.SymbolFunction},
		{regexp.MustCompile(`^\s*(?:pub\s+)?(?:struct|enum|trait)\s+(\w+)`), models.SymbolClass},
	},
	".rb": {
		{regexp.MustCompile(`^\s*def\s+(\w+)`), models.SymbolMethod},
		{regexp.MustCompile(`^\s*class\s+(\w+)`), models.SymbolClass},
	},
}

var jsRules = []symbolRule{
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+(\w+)\s*[\(<]`), models.SymbolFunction},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let)\s+(\w+)\s*=\s*(?:async\s*)?\(`), models.SymbolFunction},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:abstract\s+)?class\s+(\w+)`), models.SymbolClass},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:interface|type)\s+(\w+)`), models.SymbolClass},
	{regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:async\s+)?(\w+)\s*\(`), models.SymbolMethod},
}

// extractSymbolsHeuristic scans changed lines (+ or -) for declaration
// shapes of the file's language. Unknown extensions yield no symbols;
// the analyzer treats that as a valid empty result.
func extractSymbolsHeuristic(path, fileDiff string) []models.Symbol {
	rules, ok := symbolRulesByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil
	}

	var symbols []models.Symbol
	for _, line := range strings.Split(fileDiff, "\n") {
		if len(line) == 0 {
			continue
		}
		marker := line[0]
		if marker != '+' && marker != '-' {
			continue
		}
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}

		code := line[1:]
		for _, rule := range rules {
			if matches := rule.re.FindStringSubmatch(code); len(matches) >= 2 {
				symbols = append(symbols, models.Symbol{
					Name: matches[1],
					Kind: rule.kind,
					File: path,
				})
				break
			}
		}
	}
	return symbols
}
