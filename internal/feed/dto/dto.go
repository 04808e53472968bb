package dto

type FeedFilters struct {
	Category    string
	SearchQuery string
	Page        int
	PageSize    int
}

type CreateFeedInput struct {
	Name     string
	Category string
	Level    int
}

type UpdateFeedInput struct {
	ID       string
	Name     string
	Category string
	Level    int
}
