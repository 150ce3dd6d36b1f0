package game

import "github.com/zenjiro/pose-game/pose"

// AssignPlayers maps detections to the two player slots by horizontal head
// position only. Assignment is re-derived from scratch every tick; there is
// no identity tracking, so two people crossing can visibly swap slots.
//
// With two or more headed detections, the first two in detection order are
// kept and ordered left→player 0, right→player 1 (ties keep detection
// order). With exactly one, the side of the frame center decides the slot.
func AssignPlayers(people []pose.Person, frameWidth float64) [2]*pose.Person {
	var slots [2]*pose.Person

	headed := make([]*pose.Person, 0, 2)
	for i := range people {
		if _, ok := people[i].HeadX(); ok {
			headed = append(headed, &people[i])
			if len(headed) == 2 {
				break
			}
		}
	}

	switch len(headed) {
	case 2:
		x0, _ := headed[0].HeadX()
		x1, _ := headed[1].HeadX()
		if x1 < x0 {
			headed[0], headed[1] = headed[1], headed[0]
		}
		slots[0] = headed[0]
		slots[1] = headed[1]
	case 1:
		x, _ := headed[0].HeadX()
		if x < frameWidth/2 {
			slots[0] = headed[0]
		} else {
			slots[1] = headed[0]
		}
	}

	return slots
}
