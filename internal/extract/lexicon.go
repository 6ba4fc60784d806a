package extract

// defaultLexicon is the curated skill lexicon. Terms are stored normalized
// (lowercase); multiword phrases are matched as phrases, everything else as
// single tokens. Extend via the engine lexicon config file rather than
// editing this list per deployment.
var defaultLexicon = []string{
	// languages
	"python", "java", "javascript", "typescript", "go", "golang", "rust",
	"c", "c++", "c#", "ruby", "php", "swift", "kotlin", "scala", "r",
	"perl", "dart", "elixir", "haskell", "lua", "matlab", "objective-c",
	"bash", "powershell", "sql", "html", "css",

	// frameworks and runtimes
	"react", "angular", "vue", "svelte", "next.js", "node.js", "express",
	"django", "flask", "fastapi", "rails", "ruby on rails", "laravel",
	"spring", "spring boot", "gin", "fiber", "dotnet", ".net", "flutter",
	"react native", "jquery", "bootstrap", "tailwind",

	// data and ML
	"pandas", "numpy", "scipy", "scikit-learn", "tensorflow", "pytorch",
	"keras", "spark", "hadoop", "airflow", "dbt", "machine learning",
	"deep learning", "data science", "data engineering", "nlp",
	"computer vision", "llm", "etl",

	// databases and caches
	"postgresql", "postgres", "mysql", "mariadb", "sqlite", "mongodb",
	"redis", "memcached", "elasticsearch", "cassandra", "dynamodb",
	"oracle", "sql server", "snowflake", "bigquery", "clickhouse",
	"neo4j", "kafka", "rabbitmq",

	// cloud and infra
	"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s",
	"terraform", "ansible", "puppet", "chef", "helm", "jenkins",
	"gitlab ci", "github actions", "circleci", "prometheus", "grafana",
	"nginx", "apache", "linux", "unix", "serverless", "lambda",
	"cloudformation", "vault", "consul", "istio",

	// practices and tooling
	"git", "ci/cd", "devops", "agile", "scrum", "kanban", "tdd",
	"microservices", "rest", "rest api", "graphql", "grpc", "oauth",
	"websockets", "distributed systems", "system design",
	"unit testing", "integration testing",

	// roles and domains
	"backend", "frontend", "full stack", "fullstack", "sre",
	"site reliability", "security", "penetration testing", "qa",
	"project management", "product management",
}
