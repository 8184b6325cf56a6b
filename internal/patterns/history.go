package patterns

import (
	"regexp"

	"github.com/keyhound/keyhound/internal/types"
)

// History returns the reduced rule set applied to historical blob content.
// History scans touch every revision of every sensitive file, so the set is
// trimmed to the patterns worth that cost.
func History() Registry {
	return New(historyRules)
}

var historyRules = []Rule{
	{
		Name:     "AWS Access Key",
		Pattern:  regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Azure Storage Connection String",
		Pattern:  regexp.MustCompile(`DefaultEndpointsProtocol=https;AccountName=[^;]+;AccountKey=[A-Za-z0-9+/=]{88};`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Azure SQL Connection String",
		Pattern:  regexp.MustCompile(`(?i)Server=tcp:[^;]+\.database\.windows\.net[^;]*;.*Password=([^;"']+)`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Azure Service Principal Secret",
		Pattern:  regexp.MustCompile(`(?i)(?:AZURE_CLIENT_SECRET|ClientSecret)['"\s:=]+[A-Za-z0-9~._-]{34,40}`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Azure DevOps PAT",
		Pattern:  regexp.MustCompile(`(?i)(?:AZURE_DEVOPS_PAT|ADO_PAT)['"\s:=]+[A-Za-z0-9]{52}`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Azure Container Registry Password",
		Pattern:  regexp.MustCompile(`(?i)(?:ACR_PASSWORD|acrPassword)['"\s:=]+[A-Za-z0-9+/=]{43,}`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Docker Hub Token",
		Pattern:  regexp.MustCompile(`(?i)(?:DOCKER_HUB_TOKEN|DOCKERHUB_TOKEN)['"\s:=]+[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Docker Registry Password",
		Pattern:  regexp.MustCompile(`(?i)(?:DOCKER_PASSWORD|REGISTRY_PASSWORD)['"\s:=]+[^\s"']{8,}`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Private Key",
		Pattern:  regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH )?PRIVATE KEY-----`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Generic API Key",
		Pattern:  regexp.MustCompile(`(?i)(?:api[_-]?key|apikey)['"\s:=]+([A-Za-z0-9_-]{20,})`),
		Severity: types.SevHigh,
	},
	{
		Name:     "Database URL with Password",
		Pattern:  regexp.MustCompile(`(?:postgres|mysql|mongodb)://[a-zA-Z0-9_-]+:([^@\s]+)@`),
		Severity: types.SevCritical,
	},
	{
		Name:     "JWT Token",
		Pattern:  regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		Severity: types.SevHigh,
	},
	{
		Name:     "GitHub Token",
		Pattern:  regexp.MustCompile(`(?:ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{36,}`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Stripe API Key",
		Pattern:  regexp.MustCompile(`(?:sk|pk)_(?:live|test)_[0-9a-zA-Z]{24,}`),
		Severity: types.SevCritical,
	},
	{
		Name:     "SQL Server Connection String",
		Pattern:  regexp.MustCompile(`(?i)(?:Server|Data Source)=[^;]+;.*Password=([^;"']+)`),
		Severity: types.SevCritical,
	},
	{
		Name:     "Password Variable",
		Pattern:  regexp.MustCompile(`(?i)(?:password|passwd|pwd)["\s:=]+["']?([^"'\s]{8,})["']?`),
		Severity: types.SevHigh,
	},
}
