package cacheaside

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Arg — именованный аргумент операции. Участвует в ключе, если не исключён в Options.Exclude.
type Arg struct {
	Name  string
	Value any
}

// Key детерминированно строит ключ кэша из имени операции и аргументов.
// Исключённые аргументы отбрасываются, остальные сортируются по имени, поэтому порядок передачи не важен.
func Key(name string, args []Arg, exclude []string) string {
	filtered := make([]Arg, 0, len(args))
	for _, a := range args {
		if slices.Contains(exclude, a.Name) {
			continue
		}
		filtered = append(filtered, a)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })

	parts := make([]string, 0, len(filtered)+1)
	parts = append(parts, name)
	for _, a := range filtered {
		parts = append(parts, fmt.Sprintf("%s:%v", a.Name, a.Value))
	}
	sum := xxhash.Sum64String(strings.Join(parts, ":"))
	return "cache:" + strconv.FormatUint(sum, 16)
}
