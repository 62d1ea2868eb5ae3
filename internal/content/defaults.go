// Package content holds the literal page fixtures and loads overrides from a
// JSON content file.
package content

import "mukesh.dev/internal/models"

// ProjectCount and InternshipCount are the number of entries the page lays out.
const (
	ProjectCount    = 3
	InternshipCount = 2
)

// Default returns the built-in portfolio content
func Default() *models.Portfolio {
	return &models.Portfolio{
		Profile: models.Profile{
			Name:     "SAI MUKESH",
			FullName: "KASINENI VENKATA SAI MUKESH",
			Roles:    []string{"WEB DEVELOPER", "DATA ANALYST"},
			Tagline: "Freelancer passionate about creating sleek, user-friendly web " +
				"applications and turning data into actionable insights.",
			About: "I'm a web developer & data-analyst driven by a passion for creating sleek, " +
				"user-friendly web apps and turning data into actionable insights. I blend modern " +
				"web technologies (**HTML, CSS, JavaScript, Bootstrap**) with analytical tools " +
				"(**Python, SQL, Power BI, Tableau**) to build dynamic, accessible experiences and " +
				"tell data-driven stories.",
			Specialization: "Full-Stack Development",
			Focus:          "Data Analysis & Visualization",
			Email:          "saikasinenikavs@gmail.com",
			Phone:          "Available for consultation",
			Location:       "Available for remote work",
			LinkedInURL:    "https://www.linkedin.com/in/kasineni-venkata-sai-mukesh-73768b37b/",
			GitHubURL:      "https://github.com/saikasineni",
			Footer:         "Full-Stack Developer & Data Analyst | Freelancer",
			Year:           2025,
		},
		Nav: []models.NavItem{
			{Href: "#home", Label: "Home"},
			{Href: "#about", Label: "About"},
			{Href: "#skills", Label: "Skills"},
			{Href: "#projects", Label: "Projects"},
			{Href: "#internships", Label: "Internships"},
			{Href: "#contact", Label: "Contact"},
		},
		Skills: []models.SkillCategory{
			{Name: "Frontend", Skills: []string{"HTML", "CSS", "JavaScript", "Bootstrap", "React.js"}},
			{Name: "Backend", Skills: []string{"Node.js", "Python", "SQL"}},
			{Name: "Data Analysis", Skills: []string{"Power BI", "Tableau", "Pandas", "NumPy"}},
			{Name: "Tools", Skills: []string{"Git", "VS Code", "Figma", "Excel"}},
		},
		Projects: []models.Project{
			{
				ID:    "predictify",
				Title: "Predictify - Predictive Analysis Dashboard",
				Description: "A powerful data analytics platform that uses historical data, machine " +
					"learning, and statistical models to forecast future trends. Supports CSV, SQL, " +
					"and XLSX files with AI-powered predictions.",
				ImageURL:      "https://ucarecdn.com/b4fc2e2f-48d3-428f-8703-20bf668fd8db/-/format/auto/",
				Technologies:  []string{"Python", "Machine Learning", "JavaScript", "Power BI", "AI/ML Models"},
				LiveDemoURL:   "https://ai-predictive-analyt-dct6.bolt.host/",
				RepositoryURL: "https://github.com/saikasineni",
				Features: []string{
					"1000+ Dashboard Types",
					"AI-Powered Predictions",
					"Real-time Analytics",
					"Multi-format Support",
				},
			},
			{
				ID:    "hunger-spot",
				Title: "Hunger Spot - Restaurant Website",
				Description: "A full-featured restaurant website with menu management and reservation " +
					"functionality using core web technologies. Features modern UI/UX with responsive design.",
				ImageURL:      "https://ucarecdn.com/b71c5c8d-1bd3-40df-84ed-5bd710b7e54e/-/format/auto/",
				Technologies:  []string{"HTML", "CSS", "JavaScript", "Bootstrap", "Responsive Design"},
				LiveDemoURL:   "https://saikasineni.github.io/Hunger-Spot/",
				RepositoryURL: "https://github.com/saikasineni",
				Features:      []string{"Menu Management", "Reservation System", "Responsive Design", "Interactive UI"},
			},
			{
				ID:    "portfolio-v2",
				Title: "Portfolio Website V2.0",
				Description: "A refreshed personal portfolio site built with HTML, CSS, JavaScript, and " +
					"Bootstrap, focused on interactive UI/UX and showcasing web development skills.",
				ImageURL:      "https://ucarecdn.com/17a8d86e-256c-4e97-a8f9-c5daf2c0e50a/-/format/auto/",
				Technologies:  []string{"HTML", "CSS", "JavaScript", "Bootstrap", "Interactive Design"},
				LiveDemoURL:   "https://saikasineni.github.io/portfolio/",
				RepositoryURL: "https://github.com/saikasineni",
				Features:      []string{"Interactive UI/UX", "Responsive Design", "Modern Layout", "Portfolio Showcase"},
			},
		},
		Internships: []models.Internship{
			{
				Company:  "Tata Consultancy Services",
				Role:     "Data Visualisation Intern",
				Duration: "Jun 2025 – Feb 2025",
				Description: "Completed a business simulation creating executive-level visual insights, " +
					"refining data cleanup and presentation skills.",
				SkillsGained: []string{"Data Visualization", "Business Intelligence", "Data Analysis", "Executive Reporting"},
			},
			{
				Company:  "Boston Consulting Group (BCG)",
				Role:     "GenAI Financial Chatbot Intern",
				Duration: "Jul 2025 – Aug 2025",
				Description: "Built an AI-powered chatbot interpreting 10-K/10-Q financial data, using " +
					"Python and rule-based logic to deliver user-friendly insights.",
				SkillsGained: []string{"AI/ML", "Python", "Financial Analysis", "Chatbot Development", "NLP"},
			},
		},
	}
}
