// Package patterns defines the declarative detection rule set. Rules are
// purely data: adding or removing one never requires touching scan or
// validation logic. The registry is an immutable value passed explicitly to
// the engine and the history scanner so tests can supply synthetic rule sets.
package patterns

import (
	"fmt"
	"regexp"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/keyhound/keyhound/internal/types"
)

// Rule is a single named detection pattern. The regex carries at most one
// meaningful capture group; when present, group 1 isolates the secret portion
// (e.g. the password inside a connection string).
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Severity types.Severity
	// ContextHints lists filenames where this rule typically fires. They are
	// documentation only and never enforced.
	ContextHints []string
	Warning      string
}

// Match is one occurrence of a rule on a line. Value is capture group 1 when
// the rule has one, otherwise the whole match.
type Match struct {
	Rule  Rule
	Value string
	Start int
	End   int
}

// Registry is an ordered, immutable rule set. Order matters only for
// deterministic iteration; rules never short-circuit each other.
type Registry struct {
	rules []Rule
}

// New builds a registry from an explicit rule list. The slice is copied so
// callers cannot mutate the registry afterwards.
func New(rules []Rule) Registry {
	rs := make([]Rule, len(rules))
	copy(rs, rules)
	return Registry{rules: rs}
}

// Rules returns a copy of the rule list.
func (r Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len reports the number of rules.
func (r Registry) Len() int { return len(r.rules) }

// Fingerprint is a stable hash of the rule set (names and expressions, in
// order). Cached scan results are tagged with it so results produced by one
// rule set are never replayed for another.
func (r Registry) Fingerprint() string {
	d := xxhash.New()
	for _, rule := range r.rules {
		_, _ = d.WriteString(rule.Name)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(rule.Pattern.String())
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// Match tests every rule against the line independently. A rule may match
// multiple times per line; occurrences are the regexp package's
// non-overlapping leftmost matches. A line can therefore yield zero, one, or
// many matches across rules.
func (r Registry) Match(line string) []Match {
	var out []Match
	for _, rule := range r.rules {
		locs := rule.Pattern.FindAllStringSubmatchIndex(line, -1)
		for _, loc := range locs {
			m := Match{Rule: rule, Value: line[loc[0]:loc[1]], Start: loc[0], End: loc[1]}
			if rule.Pattern.NumSubexp() >= 1 && loc[2] >= 0 {
				m.Value = line[loc[2]:loc[3]]
			}
			out = append(out, m)
		}
	}
	return out
}

// Default returns the full detection rule set applied to working-tree scans.
func Default() Registry {
	return New(defaultRules)
}

var defaultRules = []Rule{
	// Cloud provider credentials
	{
		Name:         "AWS Access Key ID",
		Pattern:      regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "appsettings.json"},
	},
	{
		Name:         "AWS Secret Access Key",
		Pattern:      regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key['"\s:=]+[A-Za-z0-9/+=]{40}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "appsettings.json"},
	},
	{
		Name:         "Azure Storage Connection String",
		Pattern:      regexp.MustCompile(`DefaultEndpointsProtocol=https;AccountName=[^;]+;AccountKey=[A-Za-z0-9+/=]{88};`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json", ".env", "Web.config"},
	},
	{
		Name:         "Google Cloud API Key",
		Pattern:      regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "next.config.js"},
	},

	// Azure specific
	{
		Name:         "Azure SQL Database Connection String",
		Pattern:      regexp.MustCompile(`(?i)Server=tcp:[^;]+\.database\.windows\.net[^;]*;.*Password=([^;"']+)`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json", ".env", "azure-pipelines.yml"},
	},
	{
		Name:         "Azure Service Principal Client Secret",
		Pattern:      regexp.MustCompile(`(?i)(?:AZURE_CLIENT_SECRET|ClientSecret)['"\s:=]+[A-Za-z0-9~._-]{34,40}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "appsettings.json", "azure-pipelines.yml"},
	},
	{
		Name:         "Azure DevOps Personal Access Token",
		Pattern:      regexp.MustCompile(`(?i)(?:AZURE_DEVOPS_PAT|ADO_PAT|SYSTEM_ACCESSTOKEN)['"\s:=]+[A-Za-z0-9]{52}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "azure-pipelines.yml"},
	},
	{
		Name:         "Azure Storage Account Key",
		Pattern:      regexp.MustCompile(`(?i)(?:AccountKey|AZURE_STORAGE_KEY)['"\s:=]+[A-Za-z0-9+/=]{88}`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json", ".env"},
	},
	{
		Name:         "Azure Cosmos DB Key",
		Pattern:      regexp.MustCompile(`(?i)AccountEndpoint=https://[^;]+;AccountKey=([A-Za-z0-9+/=]{88})`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json", ".env"},
	},
	{
		Name:         "Azure Service Bus Connection String",
		Pattern:      regexp.MustCompile(`(?i)Endpoint=sb://[^;]+;SharedAccessKeyName=[^;]+;SharedAccessKey=([A-Za-z0-9+/=]{43,})`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json", ".env"},
	},
	{
		Name:         "Azure Event Hub Connection String",
		Pattern:      regexp.MustCompile(`(?i)Endpoint=sb://[^;]+\.servicebus\.windows\.net/;.*SharedAccessKey=([A-Za-z0-9+/=]{43,})`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json", ".env"},
	},
	{
		Name:         "Azure Redis Cache Connection String",
		Pattern:      regexp.MustCompile(`(?i)[a-z0-9-]+\.redis\.cache\.windows\.net[^,]*,password=([^,"']+)`),
		Severity:     types.SevHigh,
		ContextHints: []string{"appsettings.json", ".env"},
	},
	{
		Name:         "Azure Application Insights Key",
		Pattern:      regexp.MustCompile(`(?i)(?:InstrumentationKey|APPINSIGHTS_INSTRUMENTATIONKEY)['"\s:=]+[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`),
		Severity:     types.SevMedium,
		ContextHints: []string{"appsettings.json", ".env"},
	},
	{
		Name:         "Azure Container Registry Password",
		Pattern:      regexp.MustCompile(`(?i)(?:ACR_PASSWORD|acrPassword)['"\s:=]+[A-Za-z0-9+/=]{43,}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "docker-compose.yml", "azure-pipelines.yml"},
	},
	{
		Name:         "Azure Functions Host Key",
		Pattern:      regexp.MustCompile(`(?i)x-functions-key['"\s:=]+[A-Za-z0-9_-]{52,}`),
		Severity:     types.SevHigh,
		ContextHints: []string{"local.settings.json", ".env"},
	},
	{
		Name:         "Azure App Services Publishing Password",
		Pattern:      regexp.MustCompile(`(?i)<publishProfile.*userName="[^"]+".*userPWD="([^"]+)"`),
		Severity:     types.SevCritical,
		ContextHints: []string{".pubxml", "publish profile"},
	},
	{
		Name:         "Azure Key Vault Secret Version",
		Pattern:      regexp.MustCompile(`(?i)https://[a-z0-9-]+\.vault\.azure\.net/secrets/[^/]+/([a-f0-9]{32})`),
		Severity:     types.SevHigh,
		ContextHints: []string{"Any file"},
		Warning:      "Secret version should not be hardcoded",
	},

	// Docker specific
	{
		Name:         "Docker Hub Access Token",
		Pattern:      regexp.MustCompile(`(?i)(?:DOCKER_HUB_TOKEN|DOCKERHUB_TOKEN)['"\s:=]+[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "docker-compose.yml", ".github/workflows"},
	},
	{
		Name:         "Docker Registry Password",
		Pattern:      regexp.MustCompile(`(?i)(?:DOCKER_PASSWORD|REGISTRY_PASSWORD)['"\s:=]+[^\s"']{8,}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "docker-compose.yml", "Dockerfile"},
	},
	{
		Name:         "Dockerfile ARG with Secret",
		Pattern:      regexp.MustCompile(`(?i)ARG\s+(?:PASSWORD|SECRET|TOKEN|KEY|API_KEY)=([^\s]+)`),
		Severity:     types.SevHigh,
		ContextHints: []string{"Dockerfile"},
		Warning:      "ARG values are visible in image history",
	},
	{
		Name:         "Dockerfile ENV with Secret",
		Pattern:      regexp.MustCompile(`(?i)ENV\s+(?:PASSWORD|SECRET|TOKEN|KEY|API_KEY)\s*=?\s*([^\s]+)`),
		Severity:     types.SevHigh,
		ContextHints: []string{"Dockerfile"},
		Warning:      "ENV values are visible in image inspection",
	},
	{
		Name:         "Harbor Registry Password",
		Pattern:      regexp.MustCompile(`(?i)harbor[_-]?password['"\s:=]+[^\s"']{8,}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "docker-compose.yml"},
	},

	// Next.js / Vite client exposure
	{
		Name:         "NEXT_PUBLIC with Sensitive Data",
		Pattern:      regexp.MustCompile(`(?i)NEXT_PUBLIC_[A-Z_]*(?:API|SECRET|KEY|TOKEN)['"\s:=]+[A-Za-z0-9+/=-]{20,}`),
		Severity:     types.SevHigh,
		ContextHints: []string{".env"},
		Warning:      "NEXT_PUBLIC_ vars are exposed to browser",
	},
	{
		Name:         "VITE with Sensitive Data",
		Pattern:      regexp.MustCompile(`(?i)VITE_[A-Z_]*(?:API|SECRET|KEY|TOKEN)['"\s:=]+[A-Za-z0-9+/=-]{20,}`),
		Severity:     types.SevHigh,
		ContextHints: []string{".env"},
		Warning:      "VITE_ vars are exposed to browser",
	},
	{
		Name:         "Vercel Token",
		Pattern:      regexp.MustCompile(`(?i)vercel[_-]?token['"\s:=]+[A-Za-z0-9]{24}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".vercel/", ".env"},
	},
	{
		Name:         "Next.js API Secret",
		Pattern:      regexp.MustCompile(`(?i)(?:NEXTAUTH_SECRET|API_SECRET|APP_SECRET)['"\s:=]+[A-Za-z0-9+/=-]{32,}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env.local"},
	},

	// .NET / ABP specific
	{
		Name:         "SQL Server Connection String",
		Pattern:      regexp.MustCompile(`(?i)(?:Server|Data Source)=[^;]+;(?:Database|Initial Catalog)=[^;]+;(?:User ID|UID)=([^;]+);(?:Password|PWD)=[^;"']+`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json", "Web.config"},
	},
	{
		Name:         "Entity Framework Connection String with Password",
		Pattern:      regexp.MustCompile(`(?i)ConnectionStrings["\s:]*\{[^}]*Password=([^;"']+)`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json"},
	},
	{
		Name:         "ABP License Code",
		Pattern:      regexp.MustCompile(`(?i)AbpLicenseCode['"\s:=]+[A-Za-z0-9+/=-]{50,}`),
		Severity:     types.SevMedium,
		ContextHints: []string{"appsettings.json"},
	},
	{
		Name:         "IdentityServer Client Secret",
		Pattern:      regexp.MustCompile(`(?i)ClientSecrets["\s:]*\[[^\]]*Value["\s:]*["']([A-Za-z0-9+/=-]{16,})["']`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json"},
	},
	{
		Name:         "JWT Signing Key (.NET)",
		Pattern:      regexp.MustCompile(`(?i)(?:JwtBearer|Jwt).*["'](?:Secret|SigningKey|IssuerSigningKey)["']:\s*["']([A-Za-z0-9+/=-]{32,})["']`),
		Severity:     types.SevCritical,
		ContextHints: []string{"appsettings.json"},
	},
	{
		Name:         "Redis Connection with Password",
		Pattern:      regexp.MustCompile(`(?i)(?:localhost|[0-9.]+|[a-z0-9.-]+):\d+,password=([^,\s"']+)`),
		Severity:     types.SevHigh,
		ContextHints: []string{"appsettings.json"},
	},
	{
		Name:         "SMTP Password",
		Pattern:      regexp.MustCompile(`(?i)Smtp["\s:]*\{[^}]*["'](?:Password|UserName)["']:\s*["']([^"']{8,})["']`),
		Severity:     types.SevHigh,
		ContextHints: []string{"appsettings.json"},
	},

	// Generic
	{
		Name:         "Private Key",
		Pattern:      regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH )?PRIVATE KEY-----`),
		Severity:     types.SevCritical,
		ContextHints: []string{"Any file"},
	},
	{
		Name:         "JWT Token",
		Pattern:      regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		Severity:     types.SevHigh,
		ContextHints: []string{".env", "config files"},
	},
	{
		Name:         "Generic API Key",
		Pattern:      regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|api[_-]?secret)['"\s:=]+([A-Za-z0-9_-]{20,})`),
		Severity:     types.SevHigh,
		ContextHints: []string{".env", "config files"},
	},
	{
		Name:         "Password Variable",
		Pattern:      regexp.MustCompile(`(?i)(?:password|passwd|pwd)["\s:=]+["']?([^"'\s]{8,})["']?`),
		Severity:     types.SevHigh,
		ContextHints: []string{"Any config file"},
	},
	{
		Name:         "Database URL with Credentials",
		Pattern:      regexp.MustCompile(`(?:postgres|mysql|mongodb(?:\+srv)?)://[a-zA-Z0-9_-]+:([^@\s]+)@`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "DATABASE_URL"},
	},
	{
		Name:         "Bearer Token",
		Pattern:      regexp.MustCompile(`Bearer\s+[A-Za-z0-9_-]{20,}`),
		Severity:     types.SevHigh,
		ContextHints: []string{"HTTP headers in code"},
	},
	{
		Name:         "Slack Webhook",
		Pattern:      regexp.MustCompile(`https://hooks\.slack\.com/services/T[A-Z0-9]{8,}/B[A-Z0-9]{8,}/[A-Za-z0-9]{24}`),
		Severity:     types.SevMedium,
		ContextHints: []string{".env"},
	},
	{
		Name:         "GitHub Token",
		Pattern:      regexp.MustCompile(`(?:ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{36,}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env", "CI/CD configs"},
	},
	{
		Name:         "Stripe API Key",
		Pattern:      regexp.MustCompile(`(?:sk|pk)_(?:live|test)_[0-9a-zA-Z]{24,}`),
		Severity:     types.SevCritical,
		ContextHints: []string{".env"},
	},
	{
		Name:         "SendGrid API Key",
		Pattern:      regexp.MustCompile(`SG\.[a-zA-Z0-9_-]{22}\.[a-zA-Z0-9_-]{43}`),
		Severity:     types.SevHigh,
		ContextHints: []string{".env", "appsettings.json"},
	},
	{
		Name:         "NPM Auth Token",
		Pattern:      regexp.MustCompile(`//registry\.npmjs\.org/:_authToken=([A-Za-z0-9-_]+)`),
		Severity:     types.SevCritical,
		ContextHints: []string{".npmrc"},
	},
}
