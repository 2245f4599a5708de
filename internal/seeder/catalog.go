package seeder

// Tables lists every seeded table with the tables its foreign keys point at.
var Tables = []TableInfo{
	{Name: "skills"},
	{Name: "users"},
	{Name: "profiles", Dependencies: []string{"users"}},
	{Name: "user_skills", Dependencies: []string{"users", "skills"}},
	{Name: "projects", Dependencies: []string{"users"}},
	{Name: "project_skills", Dependencies: []string{"projects", "skills"}},
	{Name: "proposals", Dependencies: []string{"projects", "users"}},
	{Name: "messages", Dependencies: []string{"users"}},
	{Name: "notifications", Dependencies: []string{"users"}},
	{Name: "ratings", Dependencies: []string{"users", "projects"}},
	{Name: "analytics_events", Dependencies: []string{"users"}},
	{Name: "freelancer_preferences", Dependencies: []string{"users"}},
	{Name: "project_applications_history", Dependencies: []string{"users", "projects"}},
}

// TableNames returns the seeded tables in catalog order.
func TableNames() []string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = t.Name
	}
	return names
}

var skillCatalog = []string{
	"JavaScript", "Python", "React", "Node.js", "AWS", "UI/UX Design",
	"Content Writing", "Digital Marketing", "SEO", "Data Analysis",
	"Machine Learning", "PHP", "Mobile Development", "Graphic Design",
	"Blockchain", "DevOps", "Technical Writing", "Video Editing",
	"WordPress", "Database Design", "Java", "C#", "Angular", "Vue.js",
	"iOS Development", "Android Development", "Ruby on Rails", "Docker",
	"Kubernetes", "Cybersecurity",
}

var categories = []string{
	"Web Development", "Mobile App Development", "Design", "Writing",
	"Marketing", "Data Science", "Business", "Admin Support",
	"Customer Service", "Sales", "Accounting", "Legal", "Engineering",
	"IT & Networking", "Translation",
}

var (
	devices       = []string{"desktop", "mobile", "tablet"}
	browsers      = []string{"Chrome", "Firefox", "Safari", "Edge"}
	searchQueries = []string{"python developer", "react frontend", "logo design", "content writer"}
)

// Labels accepted in the configurable distributions.
var (
	assignedStatuses  = []string{StatusInProgress, StatusCompleted, StatusCancelled}
	notificationTypes = []string{NotifyNewMessage, NotifyProposalAccepted, NotifyProjectCompleted, NotifyPaymentReceived}
	eventTypes        = []string{EventLogin, EventSearch, EventViewProfile, EventSubmitProposal, EventCompleteProject}
)
