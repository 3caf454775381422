package huggingface

// sibling is one file on the head revision of a hub repository
type sibling struct {
	RFileName string `json:"rfilename"`
}

// repoResponse is the hub API representation of a repository. Spaces,
// models and datasets share this shape.
type repoResponse struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	SHA      string    `json:"sha"`
	Private  bool      `json:"private"`
	Siblings []sibling `json:"siblings"`
}

// whoAmIResponse is the response of /api/whoami-v2
type whoAmIResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
