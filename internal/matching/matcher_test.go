package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/taxonomy"
	"github.com/jonathan/skill-matcher/internal/types"
)

func skill(name string, category types.Category, confidence float64) types.ExtractedSkill {
	return types.ExtractedSkill{Name: name, Category: category, Confidence: confidence}
}

func extraction(years int, skills ...types.ExtractedSkill) *types.ExtractionResult {
	r := types.NewExtractionResult()
	for _, s := range skills {
		r.Skills[s.Name] = s
		r.Categories.Append(s.Category, s.Name)
	}
	r.TotalSkills = len(r.Skills)
	r.Experience.TotalYears = years
	return r
}

func TestScore_ScenarioOverlap(t *testing.T) {
	m := New(taxonomy.Default(), DefaultWeights())
	resume := extraction(0,
		skill("python", types.CategoryProgrammingLanguages, 0.9),
		skill("sql", types.CategoryDatabases, 0.9),
	)
	job := extraction(0,
		skill("python", types.CategoryProgrammingLanguages, 0.9),
		skill("aws", types.CategoryCloudPlatforms, 0.9),
		skill("docker", types.CategoryCloudPlatforms, 0.7),
	)

	result := m.Score(resume, job)

	assert.Equal(t, []string{"python"}, result.MatchedSkills)
	assert.Equal(t, []string{"aws", "docker"}, result.MissingSkills)
	assert.Equal(t, []string{"sql"}, result.ExtraSkills)

	assert.Equal(t, types.DetailedScores{
		SkillMatch:      25.0,
		Precision:       50.0,
		Recall:          33.3,
		F1Score:         40.0,
		WeightedScore:   32.4,
		ExperienceMatch: 100.0,
		CategoryMatch:   50.0,
	}, result.DetailedScores)
	assert.Equal(t, 50.0, result.OverallScore)

	assert.Equal(t, []types.SkillGap{
		{Skill: "aws", Importance: 0.9, Category: types.CategoryCloudPlatforms, Priority: types.PriorityHigh},
		{Skill: "docker", Importance: 0.7, Category: types.CategoryCloudPlatforms, Priority: types.PriorityMedium},
	}, result.SkillGaps)
	assert.NotNil(t, result.Recommendations)
}

func TestScore_ExperienceHalf(t *testing.T) {
	m := New(nil, DefaultWeights())
	resume := extraction(5, skill("go", types.CategoryProgrammingLanguages, 0.9))
	job := extraction(10, skill("go", types.CategoryProgrammingLanguages, 0.9))

	result := m.Score(resume, job)

	assert.Equal(t, 0.5, ExperienceMatch(5, 10))
	assert.Equal(t, 50.0, result.DetailedScores.ExperienceMatch)
}

func TestScore_EmptyJob(t *testing.T) {
	m := New(taxonomy.Default(), DefaultWeights())
	resume := extraction(3, skill("python", types.CategoryProgrammingLanguages, 0.9))

	result := m.Score(resume, extraction(0))

	assert.Equal(t, 100.0, result.DetailedScores.CategoryMatch)
	assert.Equal(t, 0.0, result.DetailedScores.WeightedScore)
	assert.Equal(t, 0.0, result.DetailedScores.F1Score)
	assert.Equal(t, 0.0, result.DetailedScores.Recall)
	// only the experience and category terms contribute
	assert.Equal(t, 30.0, result.OverallScore)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.Equal(t, []string{"python"}, result.ExtraSkills)
	assert.Empty(t, result.SkillGaps)
}

func TestScore_BothEmptyAndNil(t *testing.T) {
	m := New(taxonomy.Default(), DefaultWeights())

	for _, result := range []*types.MatchResult{
		m.Score(extraction(0), extraction(0)),
		m.Score(nil, nil),
	} {
		assert.Equal(t, 30.0, result.OverallScore)
		assert.Equal(t, 0.0, result.DetailedScores.SkillMatch)
		assert.NotNil(t, result.MatchedSkills)
		assert.NotNil(t, result.Comparison)
	}
}

func TestScore_PerfectMatch(t *testing.T) {
	m := New(nil, DefaultWeights())
	doc := extraction(5,
		skill("python", types.CategoryProgrammingLanguages, 1.0),
		skill("aws", types.CategoryCloudPlatforms, 1.0),
	)

	result := m.Score(doc, doc)

	assert.Equal(t, 100.0, result.OverallScore)
	assert.Equal(t, 100.0, result.DetailedScores.SkillMatch)
}

func TestScore_SetInvariantsAndBounds(t *testing.T) {
	m := New(taxonomy.Default(), DefaultWeights())
	docs := []*types.ExtractionResult{
		extraction(0),
		extraction(2, skill("python", types.CategoryProgrammingLanguages, 0.7)),
		extraction(12,
			skill("python", types.CategoryProgrammingLanguages, 1.0),
			skill("docker", types.CategoryCloudPlatforms, 0.8),
			skill("agile", types.CategorySoftSkills, 0.9),
		),
		extraction(4,
			skill("docker", types.CategoryCloudPlatforms, 0.9),
			skill("sql", types.CategoryDatabases, 0.65),
		),
	}

	for _, resume := range docs {
		for _, job := range docs {
			result := m.Score(resume, job)

			assert.GreaterOrEqual(t, result.OverallScore, 0.0)
			assert.LessOrEqual(t, result.OverallScore, 100.0)

			union := append(append([]string{}, result.MatchedSkills...), result.MissingSkills...)
			assert.ElementsMatch(t, job.SkillNames(), union)
			for _, s := range result.MatchedSkills {
				assert.NotContains(t, result.MissingSkills, s)
				assert.Contains(t, resume.Skills, s)
			}
			for _, s := range result.ExtraSkills {
				assert.NotContains(t, job.Skills, s)
			}
		}
	}
}

func TestExperienceMatch_Monotonic(t *testing.T) {
	prev := -1.0
	for years := 0; years <= 15; years++ {
		got := ExperienceMatch(years, 10)
		assert.GreaterOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
		prev = got
	}
	assert.Equal(t, 1.0, ExperienceMatch(0, 0))
	assert.Equal(t, 0.0, ExperienceMatch(0, 4))
}

func TestCategoryMatch(t *testing.T) {
	resume := extraction(0, skill("python", types.CategoryProgrammingLanguages, 0.9))
	job := extraction(0,
		skill("go", types.CategoryProgrammingLanguages, 0.9),
		skill("aws", types.CategoryCloudPlatforms, 0.9),
		skill("scrum", types.CategorySoftSkills, 0.9),
	)

	assert.InDelta(t, 1.0/3.0, CategoryMatch(resume, job), 1e-9)
	assert.Equal(t, 1.0, CategoryMatch(resume, extraction(0)))
	assert.Equal(t, 0.0, CategoryMatch(extraction(0), job))
}

func TestWeightedScore_FavorsEmphasizedSkills(t *testing.T) {
	job := extraction(0,
		skill("python", types.CategoryProgrammingLanguages, 1.0),
		skill("excel", types.CategoryOther, 0.5),
	)
	strong := extraction(0, skill("python", types.CategoryProgrammingLanguages, 1.0))
	weak := extraction(0, skill("excel", types.CategoryOther, 1.0))

	assert.Greater(t, WeightedScore(strong, job), WeightedScore(weak, job))
	assert.InDelta(t, 1.0/1.5, WeightedScore(strong, job), 1e-9)
	assert.Equal(t, 0.0, WeightedScore(strong, extraction(0)))
}

func TestMetrics_OverallClamped(t *testing.T) {
	m := Metrics{Weighted: 1, F1: 1, Experience: 1, Category: 1}
	assert.Equal(t, 100.0, m.Overall(Weights{Weighted: 1, F1: 1, Experience: 1, Category: 1}))
	assert.Equal(t, 0.0, m.Overall(Weights{Weighted: -1}))
}

func TestCompare(t *testing.T) {
	m := New(taxonomy.Default(), DefaultWeights())
	resume := extraction(0,
		skill("python", types.CategoryProgrammingLanguages, 0.9),
		skill("pandas", types.CategoryFrameworksLibraries, 0.9),
		skill("pytorch", types.CategoryFrameworksLibraries, 0.9),
		skill("excel", types.CategoryOther, 0.9),
	)
	job := extraction(0,
		skill("python", types.CategoryProgrammingLanguages, 0.9),
		skill("data analysis", types.CategoryDataScience, 0.8),
		skill("deep learning", types.CategoryDataScience, 0.75),
		skill("machine learning", types.CategoryDataScience, 0.65),
	)

	rows := m.Compare(resume, job)

	require.Len(t, rows, 4)
	assert.Equal(t, types.Comparison{
		ResumeSkill: "python", JobSkill: "python", MatchType: types.MatchExact,
		SimilarityScore: 1.0, Category: types.CategoryProgrammingLanguages, Priority: types.RequirementRequired,
	}, rows[0])
	assert.Equal(t, types.Comparison{
		ResumeSkill: "pandas", JobSkill: "data analysis", MatchType: types.MatchWeak,
		SimilarityScore: 0.6, Category: types.CategoryDataScience, Priority: types.RequirementRequired,
	}, rows[1])
	assert.Equal(t, types.Comparison{
		ResumeSkill: "pytorch", JobSkill: "machine learning", MatchType: types.MatchWeak,
		SimilarityScore: 0.4, Category: types.CategoryDataScience, Priority: types.RequirementMentioned,
	}, rows[2])
	assert.Equal(t, types.Comparison{
		ResumeSkill: "pytorch", JobSkill: "deep learning", MatchType: types.MatchWeak,
		SimilarityScore: 0.3, Category: types.CategoryDataScience, Priority: types.RequirementRequired,
	}, rows[3])
}

func TestCompare_WithoutTaxonomyOnlyExactRows(t *testing.T) {
	m := New(nil, DefaultWeights())
	resume := extraction(0, skill("pandas", types.CategoryFrameworksLibraries, 0.9))
	job := extraction(0, skill("data analysis", types.CategoryDataScience, 0.9))

	assert.Empty(t, m.Compare(resume, job))
}

func TestGaps_TieBreakByName(t *testing.T) {
	job := extraction(0,
		skill("kafka", types.CategoryToolsTechnologies, 0.9),
		skill("aws", types.CategoryCloudPlatforms, 0.9),
		skill("redis", types.CategoryDatabases, 1.0),
	)

	gaps := Gaps([]string{"kafka", "aws", "redis", "unknown"}, job)

	require.Len(t, gaps, 3)
	assert.Equal(t, "redis", gaps[0].Skill)
	assert.Equal(t, "aws", gaps[1].Skill)
	assert.Equal(t, "kafka", gaps[2].Skill)
}

func TestDefaultWeights(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-9)
	assert.Equal(t, DefaultWeights(), New(nil, DefaultWeights()).Weights())
}
