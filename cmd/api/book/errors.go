package book

type ErrResponse struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

func (e ErrResponse) Error() string {
	return e.Message
}

var ErrResponseBookEntryBlankTitle = ErrResponse{100, "field 'title' must be filled."}
var ErrResponseBookNotFound = ErrResponse{101, "book not found"}
var ErrResponseEntryInvalidJSON = ErrResponse{102, "invalid json request."}
var ErrResponseIdInvalidFormat = ErrResponse{103, "the endpoint is not a valid format ID. Must be /book/{uuid}"}
var ErrResponseQuerySortByInvalid = ErrResponse{104, "query parameter 'sort_by' must be: title, author, created_at or updated_at. 'sort_direction' must be asc or desc."}
var ErrResponseQueryPageInvalid = ErrResponse{105, "query parameter 'page' must be an int starting in 1. 'page_size' must be an int between 1 and 100."}
var ErrResponseQueryPageOutOfRange = ErrResponse{106, "page out of range."}
