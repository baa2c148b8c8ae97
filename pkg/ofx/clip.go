// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

// ClipDescriptor is a clip declared during DescribeInContext. Its setters
// fail with SEQUENCE_ERROR once that action has returned.
type ClipDescriptor struct {
	name  string
	scope *scope
	props *PropertySet
}

// Name returns the clip name.
func (c *ClipDescriptor) Name() string { return c.name }

// Properties returns the descriptor's property set.
func (c *ClipDescriptor) Properties() *PropertySet { return c.props }

// SetSupportedComponents declares which components the clip accepts.
func (c *ClipDescriptor) SetSupportedComponents(components ...ImageComponent) error {
	if err := c.scope.require("SetSupportedComponents", ActionDescribeInContext); err != nil {
		return err
	}
	return c.props.SetTags(ImageEffectPropSupportedComponents, tagsOf(components)...)
}

// SetOptional marks the clip as not required to be connected.
func (c *ClipDescriptor) SetOptional(optional bool) error {
	if err := c.scope.require("SetOptional", ActionDescribeInContext); err != nil {
		return err
	}
	return c.props.SetBool(ImageClipPropOptional, optional)
}

// SetIsMask marks the clip as a mask input.
func (c *ClipDescriptor) SetIsMask(mask bool) error {
	if err := c.scope.require("SetIsMask", ActionDescribeInContext); err != nil {
		return err
	}
	return c.props.SetBool(ImageClipPropIsMask, mask)
}

// SetLabel sets the user visible name of the clip.
func (c *ClipDescriptor) SetLabel(label string) error {
	if err := c.scope.require("SetLabel", ActionDescribeInContext); err != nil {
		return err
	}
	return c.props.SetString(PropLabel, label)
}

// ClipHandle is a clip bound to an effect instance. All queries go to the
// host, so the answer reflects the current connection.
type ClipHandle struct {
	name    string
	handle  Handle
	effects EffectSuite
	props   *PropertySet
}

// Name returns the clip name.
func (c *ClipHandle) Name() string { return c.name }

// Handle returns the host handle of the clip.
func (c *ClipHandle) Handle() Handle { return c.handle }

// Properties returns the clip's property set.
func (c *ClipHandle) Properties() *PropertySet { return c.props }

// Connected reports whether the host has media connected to the clip.
func (c *ClipHandle) Connected() (bool, error) {
	return c.props.Bool(ImageClipPropConnected)
}

// Components returns the components the plugin will receive.
func (c *ClipHandle) Components() (ImageComponent, error) {
	return c.component(ImageEffectPropComponents)
}

// UnmappedComponents returns the components of the media before any
// mapping by the host.
func (c *ClipHandle) UnmappedComponents() (ImageComponent, error) {
	return c.component(ImageClipPropUnmappedComponents)
}

// PixelDepth returns the bit depth the plugin will receive.
func (c *ClipHandle) PixelDepth() (BitDepth, error) {
	tag, err := c.props.Tag(ImageEffectPropPixelDepth)
	if err != nil {
		return DepthNone, err
	}
	d, err := ParseBitDepth(tag)
	if err != nil {
		return DepthNone, ErrBadTag(RoleClipInstance, ImageEffectPropPixelDepth, tag)
	}
	return d, nil
}

// PixelAspectRatio returns the pixel aspect ratio of the clip.
func (c *ClipHandle) PixelAspectRatio() (float64, error) {
	return c.props.Double(ImagePropPixelAspectRatio)
}

// FrameRange returns the frames over which the clip has content.
func (c *ClipHandle) FrameRange() (FrameRange, error) {
	vs, err := c.props.Doubles(ImageEffectPropFrameRange)
	if err != nil {
		return FrameRange{}, err
	}
	return FrameRange{Min: vs[0], Max: vs[1]}, nil
}

// RegionOfDefinition returns the clip's region of definition at time.
func (c *ClipHandle) RegionOfDefinition(time float64) (RectD, error) {
	rod, err := c.effects.ClipRegionOfDefinition(c.handle, time)
	if err != nil {
		return RectD{}, ErrClipHost(c.name, err)
	}
	return rod, nil
}

func (c *ClipHandle) component(key string) (ImageComponent, error) {
	tag, err := c.props.Tag(key)
	if err != nil {
		return ComponentNone, err
	}
	comp, err := ParseImageComponent(tag)
	if err != nil {
		return ComponentNone, ErrBadTag(RoleClipInstance, key, tag)
	}
	return comp, nil
}
