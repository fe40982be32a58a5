package dto

import "basegraph.app/fortune/internal/model"

// FortuneErrorMessage is the static body of every failed fortune request.
const FortuneErrorMessage = "운세를 생성하는 중에 문제가 발생했습니다."

type StructuredFortuneResponse struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

type FreeformFortuneResponse struct {
	Fortune string `json:"fortune"`
}

func ToFortuneResponse(f *model.Fortune) any {
	if f.Mode == model.FortuneModeFreeform {
		return FreeformFortuneResponse{Fortune: f.Text}
	}
	return StructuredFortuneResponse{Header: f.Header, Body: f.Body}
}
