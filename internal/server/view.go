package server

import "github.com/imamik/onboard/internal/onboarding"

// StateView is the JSON shape returned for a session.
type StateView struct {
	Step     string               `json:"step"`
	Index    int                  `json:"index"`
	Progress float64              `json:"progress"`
	Syncing  bool                 `json:"syncing"`
	Phase    onboarding.Phase     `json:"phase"`
	Sections []SectionView        `json:"sections"`
	Form     onboarding.FormState `json:"form"`
}

// SectionView is one sidebar entry.
type SectionView struct {
	Label  string                   `json:"label"`
	Status onboarding.SectionStatus `json:"status"`
}

// SessionView is returned when a session is created.
type SessionView struct {
	ID    string    `json:"id"`
	State StateView `json:"state"`
}

type errorView struct {
	Error string `json:"error"`
}

func newStateView(st onboarding.State) StateView {
	secs := onboarding.Sections()
	views := make([]SectionView, 0, len(secs))
	for _, sec := range secs {
		views = append(views, SectionView{Label: sec.Label, Status: sec.Status(st.Step)})
	}
	return StateView{
		Step:     st.Step.String(),
		Index:    st.Index,
		Progress: st.Progress(),
		Syncing:  st.Syncing,
		Phase:    st.Phase(),
		Sections: views,
		Form:     st.Form,
	}
}
