package models

type Charge struct {
	ID     int64  `json:"id"`
	Name   string `json:"name,omitempty"`
	Weight Number `json:"weight"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Machine struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	VideoURL    string     `json:"video_url,omitempty"`
	Charges     []Charge   `json:"charges"`
	Categories  []Category `json:"categories,omitempty"`
	BranchID    int64      `json:"branch_id"`
}

type Movement struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	VideoURL    string     `json:"video_url,omitempty"`
	Exercises   []Exercise `json:"exercises,omitempty"`
}

type Programme struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    Bool   `json:"is_active"`
}
