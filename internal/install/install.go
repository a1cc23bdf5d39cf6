// Package install builds copy-pasteable installation instructions.
package install

import (
	"fmt"
	"strings"

	"hubgrip/internal/domain"
)

// Step is one titled command
type Step struct {
	Title   string
	Command string
}

// Method groups the steps of one way to install a package
type Method struct {
	Label string
	Steps []Step
}

const (
	ociPrefix      = "oci://"
	krewIndexURL   = "https://github.com/kubernetes-sigs/krew-index"
	operatorHubURL = "https://operatorhub.io/install"
)

// Methods returns the ways pkg can be installed. Kinds without a known
// method return nil.
func Methods(pkg domain.Package) []Method {
	repo := pkg.Repository
	switch repo.Kind {
	case domain.KindHelm:
		if strings.HasPrefix(repo.URL, ociPrefix) {
			if m, ok := helmOCI(pkg); ok {
				return []Method{m}
			}
			return nil
		}
		return []Method{helm(pkg)}
	case domain.KindOLM:
		return []Method{olm(pkg)}
	case domain.KindKrew:
		return []Method{krew(pkg)}
	case domain.KindHelmPlugin:
		return []Method{helmPlugin(pkg)}
	}
	return nil
}

func helm(pkg domain.Package) Method {
	install := fmt.Sprintf("helm install my-%s %s/%s", pkg.Name, pkg.Repository.Name, pkg.Name)
	if pkg.Version != "" {
		install += " --version " + pkg.Version
	}
	return Method{
		Label: "Helm v3",
		Steps: []Step{
			{Title: "Add repository", Command: fmt.Sprintf("helm repo add %s %s", pkg.Repository.Name, pkg.Repository.URL)},
			{Title: "Install chart", Command: install},
		},
	}
}

// helmOCI needs a version to reference the chart
func helmOCI(pkg domain.Package) (Method, bool) {
	if pkg.Version == "" {
		return Method{}, false
	}
	ref := fmt.Sprintf("%s:%s", strings.TrimPrefix(pkg.Repository.URL, ociPrefix), pkg.Version)
	return Method{
		Label: "Helm v3 (OCI)",
		Steps: []Step{
			{Title: "Enable OCI support", Command: "export HELM_EXPERIMENTAL_OCI=1"},
			{Title: "Pull chart from remote", Command: "helm chart pull " + ref},
			{Title: "Export chart to directory", Command: "helm chart export " + ref},
			{Title: "Install chart", Command: fmt.Sprintf("helm install my-%s ./%s", pkg.Name, pkg.Name)},
		},
	}, true
}

func olm(pkg domain.Package) Method {
	return Method{
		Label: "Operator Lifecycle Manager",
		Steps: []Step{
			{Title: "Install the operator", Command: fmt.Sprintf("kubectl create -f %s/%s.yaml", operatorHubURL, pkg.Name)},
			{Title: "Watch the operator come up", Command: "kubectl get csv -n operators"},
		},
	}
}

func krew(pkg domain.Package) Method {
	url := strings.TrimSuffix(pkg.Repository.URL, "/")
	if url == "" || url == krewIndexURL {
		return Method{
			Label: "Krew",
			Steps: []Step{{Title: "Install plugin", Command: "kubectl krew install " + pkg.Name}},
		}
	}
	return Method{
		Label: "Krew (custom index)",
		Steps: []Step{
			{Title: "Add index", Command: fmt.Sprintf("kubectl krew index add %s %s", pkg.Repository.Name, url)},
			{Title: "Install plugin", Command: fmt.Sprintf("kubectl krew install %s/%s", pkg.Repository.Name, pkg.Name)},
		},
	}
}

func helmPlugin(pkg domain.Package) Method {
	return Method{
		Label: "Helm plugin",
		Steps: []Step{{Title: "Install plugin", Command: "helm plugin install " + pkg.Repository.URL}},
	}
}
