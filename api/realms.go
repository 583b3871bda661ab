package api

// Realm is one of the five independent admin areas. Each has its own login
// route and its own grant on the session; logging into one realm does not
// open any other.
type Realm struct {
	Name      string
	Title     string
	LoginPath string
	HomePath  string
}

var (
	RealmProduct = Realm{Name: "product", Title: "Product Admin Login", LoginPath: "/login", HomePath: "/admin"}
	RealmJob     = Realm{Name: "job", Title: "Job Admin Login", LoginPath: "/lagin", HomePath: "/vadmin"}
	RealmContent = Realm{Name: "content", Title: "Content Admin Login", LoginPath: "/bagin", HomePath: "/badmin"}
	RealmAudit   = Realm{Name: "audit", Title: "Audit Admin Login", LoginPath: "/sagin", HomePath: "/sagin/super"}
	RealmTeam    = Realm{Name: "team", Title: "Team Admin Login", LoginPath: "/tagin", HomePath: "/tagin/team"}
)
