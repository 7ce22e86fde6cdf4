package taxonomy

import (
	"sync"

	"github.com/jonathan/skill-matcher/internal/types"
)

var (
	defaultOnce     sync.Once
	defaultTaxonomy *Taxonomy
)

// Default returns the built-in general software engineering vocabulary.
// The same immutable instance is returned on every call.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := New(DefaultGroups(), DefaultRelations())
		if err != nil {
			panic("taxonomy: invalid built-in vocabulary: " + err.Error())
		}
		defaultTaxonomy = t
	})
	return defaultTaxonomy
}

// DefaultRelations returns the built-in related-skill links used for weak matches.
func DefaultRelations() map[string][]Relation {
	relations := make(map[string][]Relation)
	for _, s := range []string{"tensorflow", "pytorch", "scikit-learn"} {
		relations[s] = append(relations[s],
			Relation{Concept: "deep_learning", Score: 0.3},
			Relation{Concept: "machine_learning", Score: 0.4},
		)
	}
	for _, s := range []string{"pandas", "numpy"} {
		relations[s] = append(relations[s], Relation{Concept: "data_analysis", Score: 0.5})
	}
	for _, s := range []string{"pandas", "numpy", "matplotlib", "seaborn", "plotly"} {
		relations[s] = append(relations[s], Relation{Concept: "data_analysis", Score: 0.6})
	}
	return relations
}

// DefaultGroups returns the built-in vocabulary definition.
func DefaultGroups() []Group {
	return []Group{
		{Category: types.CategoryProgrammingLanguages, Skills: []Skill{
			{"python", []string{"python", "py", "python3", "django", "flask", "fastapi"}},
			{"javascript", []string{"javascript", "js", "node.js", "nodejs", "es6", "es2015"}},
			{"java", []string{"java", "spring", "spring boot", "hibernate"}},
			{"typescript", []string{"typescript", "ts", "angular", "nest.js"}},
			{"react", []string{"react", "reactjs", "react.js", "jsx", "next.js", "gatsby"}},
			{"vue", []string{"vue", "vue.js", "vuejs", "nuxt.js"}},
			{"angular", []string{"angular", "angularjs", "angular2+"}},
			{"php", []string{"php", "laravel", "symfony", "wordpress"}},
			{"c++", []string{"c++", "cpp", "c plus plus"}},
			{"c#", []string{"c#", "csharp", "c sharp", ".net", "asp.net"}},
			{"go", []string{"go", "golang"}},
			{"rust", []string{"rust", "rustlang"}},
			{"swift", []string{"swift", "ios", "xcode"}},
			{"kotlin", []string{"kotlin", "android"}},
			{"ruby", []string{"ruby", "rails", "ruby on rails"}},
			{"scala", []string{"scala", "akka", "play framework"}},
			{"r", []string{"r programming", "r language", "rstudio"}},
			{"matlab", []string{"matlab", "simulink"}},
			{"sql", []string{"sql", "mysql", "postgresql", "sqlite", "oracle", "sql server"}},
		}},
		{Category: types.CategoryFrameworksLibraries, Skills: []Skill{
			{"react", []string{"react", "reactjs", "react.js", "jsx"}},
			{"angular", []string{"angular", "angularjs"}},
			{"vue", []string{"vue", "vue.js", "vuejs"}},
			{"django", []string{"django", "django rest framework"}},
			{"flask", []string{"flask", "flask-restful"}},
			{"express", []string{"express", "express.js", "expressjs"}},
			{"spring", []string{"spring", "spring boot", "spring mvc"}},
			{"tensorflow", []string{"tensorflow", "tf", "keras"}},
			{"pytorch", []string{"pytorch", "torch"}},
			{"scikit-learn", []string{"scikit-learn", "sklearn", "scikit learn"}},
			{"pandas", []string{"pandas", "pd"}},
			{"numpy", []string{"numpy", "np"}},
			{"bootstrap", []string{"bootstrap", "bootstrap4", "bootstrap5"}},
			{"tailwind", []string{"tailwind", "tailwindcss", "tailwind css"}},
			{"jquery", []string{"jquery", "jquery ui"}},
		}},
		{Category: types.CategoryDatabases, Skills: []Skill{
			{"mysql", []string{"mysql", "mariadb"}},
			{"postgresql", []string{"postgresql", "postgres", "psql"}},
			{"mongodb", []string{"mongodb", "mongo", "mongoose"}},
			{"redis", []string{"redis", "redis cache"}},
			{"elasticsearch", []string{"elasticsearch", "elastic search", "elk stack"}},
			{"cassandra", []string{"cassandra", "apache cassandra"}},
			{"dynamodb", []string{"dynamodb", "dynamo db"}},
			{"sqlite", []string{"sqlite", "sqlite3"}},
			{"oracle", []string{"oracle", "oracle db"}},
			{"neo4j", []string{"neo4j", "graph database"}},
			{"influxdb", []string{"influxdb", "influx"}},
			{"couchdb", []string{"couchdb", "couch db"}},
		}},
		{Category: types.CategoryCloudPlatforms, Skills: []Skill{
			{"aws", []string{"aws", "amazon web services", "ec2", "s3", "lambda", "cloudformation"}},
			{"azure", []string{"azure", "microsoft azure", "azure functions"}},
			{"gcp", []string{"gcp", "google cloud", "google cloud platform"}},
			{"docker", []string{"docker", "containerization", "dockerfile"}},
			{"kubernetes", []string{"kubernetes", "k8s", "kubectl"}},
			{"terraform", []string{"terraform", "infrastructure as code"}},
			{"ansible", []string{"ansible", "configuration management"}},
			{"jenkins", []string{"jenkins", "ci/cd", "continuous integration"}},
		}},
		{Category: types.CategoryToolsTechnologies, Skills: []Skill{
			{"git", []string{"git", "github", "gitlab", "bitbucket", "version control"}},
			{"linux", []string{"linux", "ubuntu", "centos", "debian", "unix"}},
			{"docker", []string{"docker", "containerization", "docker-compose"}},
			{"kubernetes", []string{"kubernetes", "k8s", "container orchestration"}},
			{"nginx", []string{"nginx", "web server", "reverse proxy"}},
			{"apache", []string{"apache", "apache2", "httpd"}},
			{"elasticsearch", []string{"elasticsearch", "search engine"}},
			{"kafka", []string{"kafka", "apache kafka", "message queue"}},
			{"rabbitmq", []string{"rabbitmq", "message broker"}},
			{"graphql", []string{"graphql", "graph ql", "apollo"}},
			{"rest", []string{"rest", "restful", "rest api", "api"}},
			{"microservices", []string{"microservices", "micro services", "service oriented"}},
		}},
		{Category: types.CategoryDataScience, Skills: []Skill{
			{"machine_learning", []string{"machine learning", "ml", "artificial intelligence", "ai"}},
			{"deep_learning", []string{"deep learning", "neural networks", "cnn", "rnn", "lstm"}},
			{"data_analysis", []string{"data analysis", "data analytics", "statistical analysis"}},
			{"python_data", []string{"pandas", "numpy", "matplotlib", "seaborn", "plotly"}},
			{"r_data", []string{"r programming", "ggplot2", "dplyr", "tidyr"}},
			{"big_data", []string{"big data", "spark", "hadoop", "pyspark"}},
			{"nlp", []string{"nlp", "natural language processing", "text mining", "sentiment analysis"}},
			{"computer_vision", []string{"computer vision", "opencv", "image processing"}},
		}},
		{Category: types.CategorySoftSkills, Skills: []Skill{
			{"leadership", []string{"leadership", "team lead", "project management", "scrum master"}},
			{"communication", []string{"communication", "presentation", "documentation", "technical writing"}},
			{"problem_solving", []string{"problem solving", "analytical thinking", "troubleshooting"}},
			{"agile", []string{"agile", "scrum", "kanban", "sprint planning"}},
			{"teamwork", []string{"teamwork", "collaboration", "cross-functional"}},
		}},
	}
}
