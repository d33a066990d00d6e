package candidate

// Fixtures is the demo pool served when no database is configured.
func Fixtures() []Candidate {
	return []Candidate{
		{
			ID:                "ml-001",
			Name:              "Sarah Chen",
			Email:             "sarah.chen@email.com",
			Phone:             "(415) 555-0142",
			Location:          "San Francisco, CA",
			CurrentRole:       "Senior Machine Learning Engineer",
			CurrentCompany:    "Anthropic",
			YearsOfExperience: 8,
			LinkedIn:          "linkedin.com/in/sarahchen-ml",
			FitLevel:          "strong",
			Summary:           "Senior ML Engineer with 8 years of experience building and deploying production ML systems at scale. Currently working on LLM safety and alignment. Previously led ML infrastructure at Google Brain.",
			Skills:            []string{"PyTorch", "TensorFlow", "Kubernetes", "MLOps", "Distributed Training", "Model Optimization", "Python", "Go", "AWS", "GCP"},
			Education: []Education{
				{Degree: "Ph.D. in Computer Science", School: "Stanford University", Year: 2016, Focus: "Machine Learning"},
				{Degree: "B.S. in Computer Science", School: "UC Berkeley", Year: 2012},
			},
			Experience: []Experience{
				{
					Title: "Senior Machine Learning Engineer", Company: "Anthropic", Location: "San Francisco, CA",
					StartDate: "2022-03", EndDate: "Present",
					Highlights: []string{
						"Leading ML infrastructure team focused on training efficiency and model deployment",
						"Reduced model training costs by 40% through distributed training optimizations",
					},
				},
				{
					Title: "Machine Learning Engineer", Company: "Google Brain", Location: "Mountain View, CA",
					StartDate: "2018-06", EndDate: "2022-02",
					Highlights: []string{"Shipped models serving billions of requests daily"},
				},
			},
			ResumeFile: "sarah_chen_resume.pdf",
		},
		{
			ID:                "ml-002",
			Name:              "Marcus Johnson",
			Email:             "marcus.j@email.com",
			Phone:             "(510) 555-0198",
			Location:          "Oakland, CA",
			CurrentRole:       "Machine Learning Engineer II",
			CurrentCompany:    "Stripe",
			YearsOfExperience: 5,
			LinkedIn:          "linkedin.com/in/marcusjohnson",
			FitLevel:          "good",
			Summary:           "ML Engineer with 5 years of experience in applied ML for fintech. Strong background in fraud detection, risk modeling, and real-time inference systems.",
			Skills:            []string{"Python", "PyTorch", "Scikit-learn", "XGBoost", "Spark", "Kafka", "PostgreSQL", "Docker", "AWS"},
			Education: []Education{
				{Degree: "M.S. in Data Science", School: "UC San Diego", Year: 2019},
				{Degree: "B.S. in Statistics", School: "UCLA", Year: 2017},
			},
			Experience: []Experience{
				{
					Title: "Machine Learning Engineer II", Company: "Stripe", Location: "San Francisco, CA",
					StartDate: "2021-04", EndDate: "Present",
					Highlights: []string{
						"Own fraud detection models processing $500B+ in annual transactions",
						"Built real-time feature computation pipeline handling 10K+ events per second",
					},
				},
			},
			ResumeFile: "marcus_johnson_resume.pdf",
		},
		{
			ID:                "ml-004",
			Name:              "David Park",
			Email:             "david.park@email.com",
			Phone:             "(650) 555-0134",
			Location:          "Palo Alto, CA",
			CurrentRole:       "Junior Machine Learning Engineer",
			CurrentCompany:    "Scale AI",
			YearsOfExperience: 2,
			LinkedIn:          "linkedin.com/in/davidpark-ml",
			FitLevel:          "weak",
			Summary:           "Early-career ML Engineer working on data labeling infrastructure. Strong fundamentals but limited production ML experience.",
			Skills:            []string{"Python", "PyTorch", "Scikit-learn", "Pandas", "SQL", "Docker", "Git"},
			Education: []Education{
				{Degree: "M.S. in Computer Science", School: "Carnegie Mellon University", Year: 2022, Focus: "Machine Learning"},
			},
			Experience: []Experience{
				{
					Title: "Junior Machine Learning Engineer", Company: "Scale AI", Location: "San Francisco, CA",
					StartDate: "2022-06", EndDate: "Present",
					Highlights: []string{"Building tools for data labeling quality assurance"},
				},
			},
			ResumeFile: "david_park_resume.pdf",
		},
	}
}
