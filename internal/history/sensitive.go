package history

import "regexp"

// Paths that conventionally hold credentials. History traversal is scoped to
// these so every revision of every matching file gets scanned without paying
// for the whole tree at every commit.
var sensitivePathPatterns = []*regexp.Regexp{
	// Environment files
	regexp.MustCompile(`(?i)\.env$`),
	regexp.MustCompile(`(?i)\.env\..*$`),

	// .NET config files
	regexp.MustCompile(`(?i)appsettings\..*\.json$`),
	regexp.MustCompile(`(?i)appsettings\.secrets\.json$`),
	regexp.MustCompile(`(?i)Web\.config$`),
	regexp.MustCompile(`(?i).*\.pubxml$`),

	// Azure
	regexp.MustCompile(`(?i)azure[-_]?pipelines?\.(yml|yaml)$`),
	regexp.MustCompile(`(?i)local\.settings\.json$`),
	regexp.MustCompile(`(?i)\.azure/.*\.json$`),
	regexp.MustCompile(`(?i)azuredeploy\.parameters\.(json|yml|yaml)$`),
	regexp.MustCompile(`(?i).*\.publishsettings$`),

	// Docker: compose.yml, docker-compose.prod.yaml, api-compose.test.yml, ...
	regexp.MustCompile(`(?i)[-_]?compose\.(yml|yaml)$`),
	regexp.MustCompile(`(?i)[-_]?compose\..*\.(yml|yaml)$`),
	regexp.MustCompile(`(?i)Dockerfile(\..*)?$`),
	regexp.MustCompile(`(?i)\.dockerconfigjson$`),
	regexp.MustCompile(`(?i)\.docker/config\.json$`),

	// CI/CD configs
	regexp.MustCompile(`(?i)\.gitlab-ci\.(yml|yaml)$`),
	regexp.MustCompile(`(?i)\.github/workflows/.*\.(yml|yaml)$`),
	regexp.MustCompile(`(?i)\.circleci/config\.(yml|yaml)$`),
	regexp.MustCompile(`(?i)bitbucket-pipelines\.(yml|yaml)$`),

	// Credential files
	regexp.MustCompile(`(?i)credentials\.json$`),
	regexp.MustCompile(`(?i)secrets\.json$`),
	regexp.MustCompile(`(?i)\.npmrc$`),
	regexp.MustCompile(`(?i)\.pypirc$`),

	// Key material
	regexp.MustCompile(`(?i).*\.pem$`),
	regexp.MustCompile(`(?i).*\.key$`),
	regexp.MustCompile(`(?i).*\.pfx$`),
	regexp.MustCompile(`(?i).*\.p12$`),
	regexp.MustCompile(`(?i).*\.cer$`),

	// Vercel/Netlify
	regexp.MustCompile(`(?i)\.vercel/.*\.json$`),
	regexp.MustCompile(`(?i)\.netlify/.*\.json$`),
}

// IsSensitivePath reports whether a repository path looks like it holds
// credentials.
func IsSensitivePath(path string) bool {
	for _, re := range sensitivePathPatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
