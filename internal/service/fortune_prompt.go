package service

import "basegraph.app/fortune/internal/model"

const structuredFortunePrompt = `너는 삶의 균형을 찾아주는 라이프 코치야. ` +
	`오늘 사용자에게 행운을 가져다줄 작은 행동 팁이 포함된 운세를 JSON으로 만들어줘. ` +
	`(예: "오늘은 하늘을 한 번 올려다보세요.") ` +
	`JSON 객체는 'header'(오늘의 운세 요약)와 'body'(운세 설명과 행동 팁을 포함한 2문장 이하의 내용) 키를 가져야 해. ` +
	`친절하고 명확한 어조로 작성해줘. 다른 설명 없이 최종 JSON 객체만 반환해줘.`

const freeformFortunePrompt = `너는 삶의 균형을 찾아주는 라이프 코치야. ` +
	`오늘 사용자에게 행운을 가져다줄 작은 행동 팁이 포함된 짧은 운세를 2문장 이하로 만들어줘. ` +
	`(예: "오늘은 하늘을 한 번 올려다보세요.") ` +
	`친절하고 명확한 어조로 작성해줘.`

// PromptFor returns the fixed prompt for a mode.
func PromptFor(mode model.FortuneMode) string {
	if mode == model.FortuneModeFreeform {
		return freeformFortunePrompt
	}
	return structuredFortunePrompt
}
