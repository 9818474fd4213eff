// Package skills extracts normalized skill tokens from free text using a compiled
// vocabulary and a pluggable named-entity recognizer.
package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-fit/internal/parsing"
)

// minSurfaceLen is the shortest surface form kept in a compiled vocabulary.
// Shorter terms ("go", "ai", "r") match inside ordinary words.
const minSurfaceLen = 3

// defaultTerms are the canonical skills recognized by substring containment.
var defaultTerms = []string{
	// Languages
	"python", "java", "javascript", "typescript", "golang", "kotlin", "swift",
	"ruby", "php", "perl", "haskell", "elixir", "erlang", "clojure", "julia",
	"matlab", "fortran", "cobol", "groovy", "dart", "bash", "powershell",
	"objective-c", "solidity", "sql", "nosql", "graphql", "html", "css", "sass",
	"webassembly",

	// Frontend
	"react", "react native", "angular", "vue", "svelte", "nextjs", "nuxt", "redux",
	"jquery", "bootstrap", "tailwind", "webpack", "storybook", "flutter",
	"ionic", "electron",

	// Backend and frameworks
	"node.js", "express.js", "django", "flask", "fastapi", "spring boot", "spring",
	"hibernate", "ruby on rails", "laravel", "symfony", "asp.net", ".net",
	"grpc", "rest api", "restful", "microservices", "serverless", "websockets",
	"rabbitmq", "kafka", "celery", "nginx", "apache",

	// Data stores
	"postgresql", "mysql", "sqlite", "mongodb", "redis", "cassandra", "dynamodb",
	"elasticsearch", "opensearch", "neo4j", "oracle", "sql server", "mariadb",
	"snowflake", "bigquery", "redshift", "clickhouse", "couchbase", "firebase",
	"supabase", "memcached",

	// Cloud and infrastructure
	"aws", "azure", "google cloud", "kubernetes", "docker", "terraform", "ansible",
	"puppet", "chef", "helm charts", "openshift", "istio", "prometheus", "grafana",
	"datadog", "splunk", "jenkins", "github actions", "gitlab", "circleci",
	"travis", "argocd", "cicd", "continuous integration", "continuous delivery",
	"infrastructure as code", "linux", "unix", "windows server", "vmware",
	"cloudformation", "lambda", "ec2", "heroku", "vercel", "netlify",
	"devops", "site reliability", "observability", "networking", "tcp/ip", "dns",
	"load balancing",

	// Data and machine learning
	"machine learning", "deep learning", "natural language processing",
	"computer vision", "artificial intelligence", "data analysis", "data science",
	"data engineering", "data visualization", "data modeling", "data mining",
	"big data", "statistics", "pandas", "numpy", "scipy", "scikit-learn",
	"tensorflow", "pytorch", "keras", "xgboost", "spark", "hadoop", "airflow",
	"dbt", "tableau", "power bi", "looker", "microsoft excel", "etl", "mlops",
	"llm", "generative ai", "prompt engineering", "reinforcement learning",
	"neural networks", "regression", "forecasting", "a/b testing",

	// Practices and tooling
	"github", "bitbucket", "jira", "confluence", "agile", "scrum", "kanban",
	"test driven development", "unit testing", "integration testing", "selenium",
	"cypress", "jest", "pytest", "junit", "code review", "debugging",
	"system design", "distributed systems", "object oriented", "design patterns",
	"api design", "software architecture", "performance tuning", "security",
	"cybersecurity", "penetration testing", "oauth", "encryption", "compliance",
	"figma", "sketch", "ux design", "ui design", "user research", "accessibility",
	"seo", "embedded systems", "blockchain", "mobile development", "android",
	"web development", "backend", "frontend", "full stack",

	// Business and soft skills
	"communication", "teamwork", "leadership", "collaboration", "problem solving",
	"critical thinking", "project management", "product management",
	"stakeholder management", "time management", "mentoring", "coaching",
	"presentation", "negotiation", "customer service", "adaptability",
	"creativity", "attention to detail", "analytical skills", "decision making",
	"conflict resolution", "public speaking", "technical writing", "documentation",
	"strategic planning", "budgeting", "risk management", "people management",
	"cross functional", "self motivated", "organizational skills",
}

// defaultAliases map alternate surface forms to canonical skills.
var defaultAliases = map[string]string{
	"rustlang":                     "rust",
	"rust programming":             "rust",
	"reactjs":                      "react",
	"react.js":                     "react",
	"vuejs":                        "vue",
	"vue.js":                       "vue",
	"nodejs":                       "node.js",
	"next.js":                      "nextjs",
	"k8s":                          "kubernetes",
	"postgres":                     "postgresql",
	"mongo":                        "mongodb",
	"amazon web services":          "aws",
	"gcp":                          "google cloud",
	"google cloud platform":        "google cloud",
	"microsoft azure":              "azure",
	"sklearn":                      "scikit-learn",
	"ci/cd":                        "cicd",
	"nlp":                          "natural language processing",
	"tdd":                          "test driven development",
	"team player":                  "teamwork",
	"communication skills":         "communication",
	"written and verbal":           "communication",
	"problem-solving":              "problem solving",
	"restful api":                  "rest api",
	"rest apis":                    "rest api",
	"ecmascript":                   "javascript",
	"large language models":        "llm",
	"amazon s3":                    "s3",
	"apache spark":                 "spark",
	"apache kafka":                 "kafka",
	"github actions workflows":     "github actions",
	"site reliability engineering": "site reliability",
}

type vocabularyTerm struct {
	surface   string
	canonical string
}

// Vocabulary is a compiled set of skill surface forms. It is immutable and
// safe for concurrent use.
type Vocabulary struct {
	terms []vocabularyTerm
}

// DefaultVocabulary compiles the built-in technical and soft-skill terms.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultTerms, defaultAliases)
}

// NewVocabulary compiles terms and aliases. Surface forms are passed through the
// text normalizer so they match normalized documents; canonical forms go
// through skill-name normalization. Surfaces shorter than three characters after
// normalization are dropped.
func NewVocabulary(terms []string, aliases map[string]string) *Vocabulary {
	v := &Vocabulary{}
	seen := make(map[string]struct{}, len(terms)+len(aliases))

	add := func(surface, canonical string) {
		s := strings.ToLower(parsing.NormalizeText(surface))
		c := parsing.NormalizeSkillName(canonical)
		if len(s) < minSurfaceLen || c == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		v.terms = append(v.terms, vocabularyTerm{surface: s, canonical: c})
	}

	for _, term := range terms {
		add(term, term)
	}
	surfaces := make([]string, 0, len(aliases))
	for surface := range aliases {
		surfaces = append(surfaces, surface)
	}
	sort.Strings(surfaces)
	for _, surface := range surfaces {
		add(surface, aliases[surface])
	}
	return v
}

// Len returns the number of compiled surface forms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Match returns the canonical skills whose surface form is a substring of the
// lower-cased text, in vocabulary order, without duplicates.
func (v *Vocabulary) Match(text string) []string {
	lower := strings.ToLower(text)
	if lower == "" {
		return nil
	}

	var found []string
	seen := make(map[string]struct{})
	for _, term := range v.terms {
		if !strings.Contains(lower, term.surface) {
			continue
		}
		if _, ok := seen[term.canonical]; ok {
			continue
		}
		seen[term.canonical] = struct{}{}
		found = append(found, term.canonical)
	}
	return found
}
