// Package environment contains the types and methods for fetching configuration from the local environment.
package environment

import "os"

const (
	fetchDefaultBaseDir    = ".bicepdocs"                                // fetchDefaultBaseDir is the default base directory for fetching remote templates.
	fetchDefaultBaseDirEnv = "BICEPDOCS_DIR"                             // fetchDefaultBaseDirEnv is the environment variable to override the default base directory.
	docsBaseURL            = "https://learn.microsoft.com/azure/templates" // docsBaseURL is the base URL for resource type reference documentation.
	docsBaseURLEnv         = "BICEPDOCS_DOCS_BASE_URL"                   // docsBaseURLEnv is the environment variable to override the documentation base URL.
	noticeURLEnv           = "BICEPDOCS_NOTICE_URL"                      // noticeURLEnv is the environment variable naming a remote data collection notice endpoint.
)

// BicepDocsDir contents of the `BICEPDOCS_DIR` environment variable, or the default which is `.bicepdocs`.
func BicepDocsDir() string {
	dir := fetchDefaultBaseDir
	if d := os.Getenv(fetchDefaultBaseDirEnv); d != "" {
		dir = d
	}
	return dir
}

// DocsBaseURL contents of the `BICEPDOCS_DOCS_BASE_URL` environment variable, or the default which is the Azure template reference.
func DocsBaseURL() string {
	url := docsBaseURL
	if u := os.Getenv(docsBaseURLEnv); u != "" {
		url = u
	}
	return url
}

// NoticeURL contents of the `BICEPDOCS_NOTICE_URL` environment variable. Empty
// means the embedded data collection notice is used.
func NoticeURL() string {
	return os.Getenv(noticeURLEnv)
}
