package domain

import (
	"strconv"
	"strings"
)

// RepositoryKind is the kind of packages a repository holds
type RepositoryKind int

const (
	KindHelm RepositoryKind = iota
	KindFalco
	KindOPA
	KindOLM
	KindTBAction
	KindKrew
	KindHelmPlugin
	KindTektonTask
	KindKedaScaler
	KindCoreDNS
	KindKeptn
)

type kindInfo struct {
	slug    string
	name    string
	aliases []string
}

var kinds = map[RepositoryKind]kindInfo{
	KindHelm:       {slug: "helm", name: "Helm", aliases: []string{"chart", "helm chart", "helm charts"}},
	KindFalco:      {slug: "falco", name: "Falco", aliases: []string{"falco rules"}},
	KindOPA:        {slug: "opa", name: "OPA", aliases: []string{"opa policies"}},
	KindOLM:        {slug: "olm", name: "OLM", aliases: []string{"operator", "operators"}},
	KindTBAction:   {slug: "tbaction", name: "Tinkerbell action", aliases: []string{"tinkerbell actions"}},
	KindKrew:       {slug: "krew", name: "Krew", aliases: []string{"kubectl plugin", "kubectl plugins"}},
	KindHelmPlugin: {slug: "helm-plugin", name: "Helm plugin", aliases: []string{"helm plugins"}},
	KindTektonTask: {slug: "tekton-task", name: "Tekton task", aliases: []string{"tekton tasks"}},
	KindKedaScaler: {slug: "keda-scaler", name: "KEDA scaler", aliases: []string{"keda scalers"}},
	KindCoreDNS:    {slug: "coredns", name: "CoreDNS", aliases: []string{"coredns plugin", "coredns plugins"}},
	KindKeptn:      {slug: "keptn", name: "Keptn", aliases: []string{"keptn integrations"}},
}

// String returns the display name
func (k RepositoryKind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return "Unknown"
}

// Slug returns the name used in package URLs
func (k RepositoryKind) Slug() string {
	return kinds[k].slug
}

// ID returns the numeric identifier used by the API
func (k RepositoryKind) ID() string {
	return strconv.Itoa(int(k))
}

// ParseRepositoryKind resolves a numeric id, slug, display name or alias
func ParseRepositoryKind(s string) (RepositoryKind, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := kinds[RepositoryKind(n)]; ok {
			return RepositoryKind(n), true
		}
		return 0, false
	}
	lower := strings.ToLower(s)
	for k, info := range kinds {
		if lower == info.slug || lower == strings.ToLower(info.name) {
			return k, true
		}
		for _, alias := range info.aliases {
			if lower == alias {
				return k, true
			}
		}
	}
	return 0, false
}

// IsHelmKind reports whether a kind facet value denotes Helm charts
func IsHelmKind(value string) bool {
	k, ok := ParseRepositoryKind(value)
	return ok && k == KindHelm
}
