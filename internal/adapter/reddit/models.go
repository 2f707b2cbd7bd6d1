package reddit

// Wire shapes for the listing endpoints. Only the fields the gatherer
// consumes are declared; everything else in the payload is ignored at
// decode time. Parsing happens here, at the acquisition boundary, so the
// pipeline never sees untyped data.

type listing struct {
	Data struct {
		Children []listingChild `json:"children"`
	} `json:"data"`
}

type listingChild struct {
	Data rawPost `json:"data"`
}

type rawPost struct {
	ID         string  `json:"id"`
	Subreddit  string  `json:"subreddit"`
	Selftext   string  `json:"selftext"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
}

// The comments endpoint returns a two-element array: the post listing and
// the comment listing.
type commentThread struct {
	Data struct {
		Children []commentChild `json:"children"`
	} `json:"data"`
}

type commentChild struct {
	Data rawComment `json:"data"`
}

type rawComment struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
	Stickied   bool    `json:"stickied"`
}
