// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ulp

import (
	"github.com/golang/glog"
)

// Handoff is everything the host passes to the LP core, once, at boot.
type Handoff struct {
	Image  Image
	Policy WakePolicy
}

// Boot loads the image, applies the wake policy and starts the LP core, in
// that order. The first failure is returned and the remaining steps are not
// attempted; callers should treat it as fatal, since a partly configured LP
// core cannot be safely resumed.
func (c *Core) Boot(h Handoff) error {
	if err := c.Load(h.Image); err != nil {
		glog.Errorf("LP boot aborted: %v", err)
		return err
	}
	if err := c.Configure(h.Policy); err != nil {
		glog.Errorf("LP boot aborted: %v", err)
		return err
	}
	if err := c.Start(); err != nil {
		glog.Errorf("LP boot aborted: %v", err)
		return err
	}
	glog.Infof("LP core booted: %d byte program, %s", h.Image.Len(), h.Policy)
	return nil
}
