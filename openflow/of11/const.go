/*
 * OFTest11 - An OpenFlow 1.1 Software Switch
 *
 * Copyright (C) 2015 Samjung Data Service, Inc. All rights reserved.
 * Kitae Kim <superkkt@sds.co.kr>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package of11

const (
	/* Immutable messages. */
	OFPT_HELLO        = iota /* Symmetric message */
	OFPT_ERROR               /* Symmetric message */
	OFPT_ECHO_REQUEST        /* Symmetric message */
	OFPT_ECHO_REPLY          /* Symmetric message */
	OFPT_EXPERIMENTER        /* Symmetric message */
	/* Switch configuration messages. */
	OFPT_FEATURES_REQUEST   /* Controller/switch message */
	OFPT_FEATURES_REPLY     /* Controller/switch message */
	OFPT_GET_CONFIG_REQUEST /* Controller/switch message */
	OFPT_GET_CONFIG_REPLY   /* Controller/switch message */
	OFPT_SET_CONFIG         /* Controller/switch message */
	/* Asynchronous messages. */
	OFPT_PACKET_IN    /* Async message */
	OFPT_FLOW_REMOVED /* Async message */
	OFPT_PORT_STATUS  /* Async message */
	/* Controller command messages. */
	OFPT_PACKET_OUT /* Controller/switch message */
	OFPT_FLOW_MOD   /* Controller/switch message */
	OFPT_GROUP_MOD  /* Controller/switch message */
	OFPT_PORT_MOD   /* Controller/switch message */
	OFPT_TABLE_MOD  /* Controller/switch message */
	/* Statistics messages. */
	OFPT_STATS_REQUEST /* Controller/switch message */
	OFPT_STATS_REPLY   /* Controller/switch message */
	/* Barrier messages. */
	OFPT_BARRIER_REQUEST /* Controller/switch message */
	OFPT_BARRIER_REPLY   /* Controller/switch message */
	/* Queue Configuration messages. */
	OFPT_QUEUE_GET_CONFIG_REQUEST /* Controller/switch message */
	OFPT_QUEUE_GET_CONFIG_REPLY   /* Controller/switch message */
)

const (
	/* Maximum number of physical switch ports. */
	OFPP_MAX = 0xffffff00
	/* Fake output "ports". */
	OFPP_IN_PORT    = 0xfffffff8 /* Send the packet out the input port. */
	OFPP_TABLE      = 0xfffffff9 /* Submit the packet to the first flow table. */
	OFPP_NORMAL     = 0xfffffffa /* Process with normal L2/L3 switching. */
	OFPP_FLOOD      = 0xfffffffb /* All physical ports in VLAN, except input port and those blocked or link down. */
	OFPP_ALL        = 0xfffffffc /* All physical ports except input port. */
	OFPP_CONTROLLER = 0xfffffffd /* Send to controller. */
	OFPP_LOCAL      = 0xfffffffe /* Local openflow "port". */
	OFPP_ANY        = 0xffffffff /* Wildcard port used only for flow mod (delete) and flow stats requests. */
)

const (
	OFPG_MAX = 0xffffff00 /* Last usable group number. */
	OFPG_ALL = 0xfffffffc /* Represents all groups for group delete commands. */
	OFPG_ANY = 0xffffffff /* Wildcard group used only for flow stats requests. */
)

const (
	OFPTT_MAX     = 0xfe       /* Last usable table number. */
	OFPTT_ALL     = 0xff       /* Wildcard table used for table config, flow stats and flow deletes. */
	OFP_NO_BUFFER = 0xffffffff /* The packet is not buffered on the switch. */
	OFPQ_ALL      = 0xffffffff /* All queues for the port. */
)

const (
	OFP_DEFAULT_MISS_SEND_LEN = 128
	OFP_MAX_TABLE_NAME_LEN    = 32
	OFP_MAX_PORT_NAME_LEN     = 16
	DESC_STR_LEN              = 256
	SERIAL_NUM_LEN            = 32
)

const (
	OFPC_FLOW_STATS   = 1 << 0 /* Flow statistics. */
	OFPC_TABLE_STATS  = 1 << 1 /* Table statistics. */
	OFPC_PORT_STATS   = 1 << 2 /* Port statistics. */
	OFPC_GROUP_STATS  = 1 << 3 /* Group statistics. */
	OFPC_IP_REASM     = 1 << 5 /* Can reassemble IP fragments. */
	OFPC_QUEUE_STATS  = 1 << 6 /* Queue statistics. */
	OFPC_ARP_MATCH_IP = 1 << 7 /* Match IP addresses in ARP pkts. */
)

const (
	/* Handling of IP fragments. */
	OFPC_FRAG_NORMAL = 0 /* No special handling for fragments. */
	OFPC_FRAG_DROP   = 1 /* Drop fragments. */
	OFPC_FRAG_REASM  = 2 /* Reassemble (only if OFPC_IP_REASM set). */
	OFPC_FRAG_MASK   = 3
	/* TTL processing - applicable for IP and MPLS packets. */
	OFPC_INVALID_TTL_TO_CONTROLLER = 1 << 2 /* Send packets with invalid TTL to the controller. */
)

const (
	OFPPC_PORT_DOWN    = 1 << 0 /* Port is administratively down. */
	OFPPC_NO_RECV      = 1 << 2 /* Drop all packets received by port. */
	OFPPC_NO_FWD       = 1 << 5 /* Drop packets forwarded to port. */
	OFPPC_NO_PACKET_IN = 1 << 6 /* Do not send packet-in msgs for port. */
)

const (
	OFPPS_LINK_DOWN = 1 << 0 /* No physical link present. */
	OFPPS_BLOCKED   = 1 << 1 /* Port is blocked. */
	OFPPS_LIVE      = 1 << 2 /* Live for Fast Failover Group. */
)

const (
	OFPPF_10MB_HD    = 1 << 0  /* 10 Mb half-duplex rate support. */
	OFPPF_10MB_FD    = 1 << 1  /* 10 Mb full-duplex rate support. */
	OFPPF_100MB_HD   = 1 << 2  /* 100 Mb half-duplex rate support. */
	OFPPF_100MB_FD   = 1 << 3  /* 100 Mb full-duplex rate support. */
	OFPPF_1GB_HD     = 1 << 4  /* 1 Gb half-duplex rate support. */
	OFPPF_1GB_FD     = 1 << 5  /* 1 Gb full-duplex rate support. */
	OFPPF_10GB_FD    = 1 << 6  /* 10 Gb full-duplex rate support. */
	OFPPF_40GB_FD    = 1 << 7  /* 40 Gb full-duplex rate support. */
	OFPPF_100GB_FD   = 1 << 8  /* 100 Gb full-duplex rate support. */
	OFPPF_1TB_FD     = 1 << 9  /* 1 Tb full-duplex rate support. */
	OFPPF_OTHER      = 1 << 10 /* Other rate, not in the list. */
	OFPPF_COPPER     = 1 << 11 /* Copper medium. */
	OFPPF_FIBER      = 1 << 12 /* Fiber medium. */
	OFPPF_AUTONEG    = 1 << 13 /* Auto-negotiation. */
	OFPPF_PAUSE      = 1 << 14 /* Pause. */
	OFPPF_PAUSE_ASYM = 1 << 15 /* Asymmetric pause. */
)

const (
	OFPPR_ADD    = iota /* The port was added. */
	OFPPR_DELETE        /* The port was removed. */
	OFPPR_MODIFY        /* Some attribute of the port has changed. */
)

const (
	OFPR_NO_MATCH = iota /* No matching flow. */
	OFPR_ACTION          /* Action explicitly output to controller. */
)

const (
	OFPRR_IDLE_TIMEOUT = iota /* Flow idle time exceeded idle_timeout. */
	OFPRR_HARD_TIMEOUT        /* Time exceeded hard_timeout. */
	OFPRR_DELETE              /* Evicted by a DELETE flow mod. */
	OFPRR_GROUP_DELETE        /* Group was removed. */
)

const (
	OFPFC_ADD           = iota /* New flow. */
	OFPFC_MODIFY               /* Modify all matching flows. */
	OFPFC_MODIFY_STRICT        /* Modify entry strictly matching wildcards and priority. */
	OFPFC_DELETE               /* Delete all matching flows. */
	OFPFC_DELETE_STRICT        /* Delete entry strictly matching wildcards and priority. */
)

const (
	OFPFF_SEND_FLOW_REM = 1 << 0 /* Send flow removed message when flow expires or is deleted. */
	OFPFF_CHECK_OVERLAP = 1 << 1 /* Check for overlapping entries first. */
)

const (
	OFPGC_ADD    = iota /* New group. */
	OFPGC_MODIFY        /* Modify all matching groups. */
	OFPGC_DELETE        /* Delete all matching groups. */
)

const (
	OFPGT_ALL      = iota /* All (multicast/broadcast) group. */
	OFPGT_SELECT          /* Select group. */
	OFPGT_INDIRECT        /* Indirect group. */
	OFPGT_FF              /* Fast failover group. */
)

const (
	OFPTC_TABLE_MISS_CONTROLLER = 0      /* Send to controller. */
	OFPTC_TABLE_MISS_CONTINUE   = 1 << 0 /* Continue to the next table in the pipeline. */
	OFPTC_TABLE_MISS_DROP       = 1 << 1 /* Drop the packet. */
	OFPTC_TABLE_MISS_MASK       = 3
)

const (
	OFPMT_STANDARD        = 0 /* Deprecated. */
	OFPMT_STANDARD_LENGTH = 88
)

const (
	OFPFW_IN_PORT     = 1 << 0 /* Switch input port. */
	OFPFW_DL_VLAN     = 1 << 1 /* VLAN id. */
	OFPFW_DL_VLAN_PCP = 1 << 2 /* VLAN priority. */
	OFPFW_DL_TYPE     = 1 << 3 /* Ethernet frame type. */
	OFPFW_NW_TOS      = 1 << 4 /* IP ToS (DSCP field, 6 bits). */
	OFPFW_NW_PROTO    = 1 << 5 /* IP protocol. */
	OFPFW_TP_SRC      = 1 << 6 /* TCP/UDP/SCTP source port. */
	OFPFW_TP_DST      = 1 << 7 /* TCP/UDP/SCTP destination port. */
	OFPFW_MPLS_LABEL  = 1 << 8 /* MPLS label. */
	OFPFW_MPLS_TC     = 1 << 9 /* MPLS TC. */
	OFPFW_ALL         = (1 << 10) - 1
)

const (
	OFPAT_OUTPUT         = iota /* Output to switch port. */
	OFPAT_SET_VLAN_VID          /* Set the 802.1q VLAN id. */
	OFPAT_SET_VLAN_PCP          /* Set the 802.1q priority. */
	OFPAT_SET_DL_SRC            /* Ethernet source address. */
	OFPAT_SET_DL_DST            /* Ethernet destination address. */
	OFPAT_SET_NW_SRC            /* IP source address. */
	OFPAT_SET_NW_DST            /* IP destination address. */
	OFPAT_SET_NW_TOS            /* IP ToS (DSCP field, 6 bits). */
	OFPAT_SET_NW_ECN            /* IP ECN (2 bits). */
	OFPAT_SET_TP_SRC            /* TCP/UDP/SCTP source port. */
	OFPAT_SET_TP_DST            /* TCP/UDP/SCTP destination port. */
	OFPAT_COPY_TTL_OUT          /* Copy TTL "outwards" -- from next-to-outermost to outermost */
	OFPAT_COPY_TTL_IN           /* Copy TTL "inwards" -- from outermost to next-to-outermost */
	OFPAT_SET_MPLS_LABEL        /* MPLS label */
	OFPAT_SET_MPLS_TC           /* MPLS TC */
	OFPAT_SET_MPLS_TTL          /* MPLS TTL */
	OFPAT_DEC_MPLS_TTL          /* Decrement MPLS TTL */
	OFPAT_PUSH_VLAN             /* Push a new VLAN tag */
	OFPAT_POP_VLAN              /* Pop the outer VLAN tag */
	OFPAT_PUSH_MPLS             /* Push a new MPLS tag */
	OFPAT_POP_MPLS              /* Pop the outer MPLS tag */
	OFPAT_SET_QUEUE             /* Set queue id when outputting to a port */
	OFPAT_GROUP                 /* Apply group. */
	OFPAT_SET_NW_TTL            /* IP TTL. */
	OFPAT_DEC_NW_TTL            /* Decrement IP TTL. */
	OFPAT_EXPERIMENTER   = 0xffff
)

const (
	OFPIT_GOTO_TABLE     = 1 /* Setup the next table in the lookup pipeline */
	OFPIT_WRITE_METADATA = 2 /* Setup the metadata field for use later in pipeline */
	OFPIT_WRITE_ACTIONS  = 3 /* Write the action(s) onto the datapath action set */
	OFPIT_APPLY_ACTIONS  = 4 /* Applies the action(s) immediately */
	OFPIT_CLEAR_ACTIONS  = 5 /* Clears all actions from the datapath action set */
	OFPIT_EXPERIMENTER   = 0xFFFF
)

const (
	OFPQT_NONE     = iota /* No property defined for queue (default). */
	OFPQT_MIN_RATE        /* Minimum datarate guaranteed. */
)

const (
	/* Description of this OpenFlow switch.
	 * The request body is empty.
	 * The reply body is struct ofp_desc_stats. */
	OFPST_DESC = 0
	/* Individual flow statistics.
	 * The request body is struct ofp_flow_stats_request.
	 * The reply body is an array of struct ofp_flow_stats. */
	OFPST_FLOW = 1
	/* Aggregate flow statistics.
	 * The request body is struct ofp_aggregate_stats_request.
	 * The reply body is struct ofp_aggregate_stats_reply. */
	OFPST_AGGREGATE = 2
	/* Flow table statistics.
	 * The request body is empty.
	 * The reply body is an array of struct ofp_table_stats. */
	OFPST_TABLE = 3
	/* Port statistics.
	 * The request body is struct ofp_port_stats_request.
	 * The reply body is an array of struct ofp_port_stats. */
	OFPST_PORT = 4
	/* Queue statistics for a port
	 * The request body is struct ofp_queue_stats_request.
	 * The reply body is an array of struct ofp_queue_stats */
	OFPST_QUEUE = 5
	/* Group counter statistics.
	 * The request body is struct ofp_group_stats_request.
	 * The reply is an array of struct ofp_group_stats. */
	OFPST_GROUP = 6
	/* Group description statistics.
	 * The request body is empty.
	 * The reply body is an array of struct ofp_group_desc_stats. */
	OFPST_GROUP_DESC = 7
	/* Experimenter extension.
	 * The request and reply bodies begin with a 32-bit experimenter ID,
	 * which must be uniquely assigned by the ONF. */
	OFPST_EXPERIMENTER = 0xffff
)

const (
	OFPSF_REPLY_MORE = 1 << 0 /* More replies to follow. */
)

const (
	OFPET_HELLO_FAILED         = iota /* Hello protocol failed. */
	OFPET_BAD_REQUEST                 /* Request was not understood. */
	OFPET_BAD_ACTION                  /* Error in action description. */
	OFPET_BAD_INSTRUCTION             /* Error in instruction list. */
	OFPET_BAD_MATCH                   /* Error in match. */
	OFPET_FLOW_MOD_FAILED             /* Problem modifying flow entry. */
	OFPET_GROUP_MOD_FAILED            /* Problem modifying group entry. */
	OFPET_PORT_MOD_FAILED             /* Port mod request failed. */
	OFPET_TABLE_MOD_FAILED            /* Table mod request failed. */
	OFPET_QUEUE_OP_FAILED             /* Queue operation failed. */
	OFPET_SWITCH_CONFIG_FAILED        /* Switch config request failed. */
)

const (
	OFPHFC_INCOMPATIBLE = iota /* No compatible version. */
	OFPHFC_EPERM               /* Permissions error. */
)

const (
	OFPBRC_BAD_VERSION      = iota /* ofp_header.version not supported. */
	OFPBRC_BAD_TYPE                /* ofp_header.type not supported. */
	OFPBRC_BAD_STAT                /* ofp_stats_request.type not supported. */
	OFPBRC_BAD_EXPERIMENTER        /* Experimenter id not supported. */
	OFPBRC_BAD_SUBTYPE             /* Experimenter type not supported. */
	OFPBRC_EPERM                   /* Permissions error. */
	OFPBRC_BAD_LEN                 /* Wrong request length for type. */
	OFPBRC_BUFFER_EMPTY            /* Specified buffer has already been used. */
	OFPBRC_BUFFER_UNKNOWN          /* Specified buffer does not exist. */
	OFPBRC_BAD_TABLE_ID            /* Specified table-id invalid or does not exist. */
)

const (
	OFPBAC_BAD_TYPE              = iota /* Unknown action type. */
	OFPBAC_BAD_LEN                      /* Length problem in actions. */
	OFPBAC_BAD_EXPERIMENTER             /* Unknown experimenter id specified. */
	OFPBAC_BAD_EXPERIMENTER_TYPE        /* Unknown action type for experimenter id. */
	OFPBAC_BAD_OUT_PORT                 /* Problem validating output port. */
	OFPBAC_BAD_ARGUMENT                 /* Bad action argument. */
	OFPBAC_EPERM                        /* Permissions error. */
	OFPBAC_TOO_MANY                     /* Can't handle this many actions. */
	OFPBAC_BAD_QUEUE                    /* Problem validating output queue. */
	OFPBAC_BAD_OUT_GROUP                /* Invalid group id in forward action. */
	OFPBAC_MATCH_INCONSISTENT           /* Action can't apply for this match. */
	OFPBAC_UNSUPPORTED_ORDER            /* Action order is unsupported for the action list in an Apply-Actions instruction */
	OFPBAC_BAD_TAG                      /* Actions uses an unsupported tag/encap. */
)

const (
	OFPBIC_UNKNOWN_INST        = iota /* Unknown instruction. */
	OFPBIC_UNSUP_INST                 /* Switch or table does not support the instruction. */
	OFPBIC_BAD_TABLE_ID               /* Invalid Table-ID specified. */
	OFPBIC_UNSUP_METADATA             /* Metadata value unsupported by datapath. */
	OFPBIC_UNSUP_METADATA_MASK        /* Metadata mask value unsupported by datapath. */
	OFPBIC_UNSUP_EXP_INST             /* Specific experimenter instruction unsupported. */
)

const (
	OFPBMC_BAD_TYPE         = iota /* Unsupported match type specified by the match */
	OFPBMC_BAD_LEN                 /* Length problem in match. */
	OFPBMC_BAD_TAG                 /* Match uses an unsupported tag/encap. */
	OFPBMC_BAD_DL_ADDR_MASK        /* Unsupported datalink addr mask. */
	OFPBMC_BAD_NW_ADDR_MASK        /* Unsupported network addr mask. */
	OFPBMC_BAD_WILDCARDS           /* Unsupported wildcard specified in the match. */
	OFPBMC_BAD_FIELD               /* Unsupported field in the match. */
	OFPBMC_BAD_VALUE               /* Unsupported value in a match field. */
)

const (
	OFPFMFC_UNKNOWN      = iota /* Unspecified error. */
	OFPFMFC_TABLE_FULL          /* Flow not added because table was full. */
	OFPFMFC_BAD_TABLE_ID        /* Table does not exist */
	OFPFMFC_OVERLAP             /* Attempted to add overlapping flow with CHECK_OVERLAP flag set. */
	OFPFMFC_EPERM               /* Permissions error. */
	OFPFMFC_BAD_TIMEOUT         /* Flow not added because of unsupported idle/hard timeout. */
	OFPFMFC_BAD_COMMAND         /* Unsupported or unknown command. */
)

const (
	OFPGMFC_GROUP_EXISTS         = iota /* Group not added because a group ADD attempted to replace an already-present group. */
	OFPGMFC_INVALID_GROUP               /* Group not added because Group specified is invalid. */
	OFPGMFC_WEIGHT_UNSUPPORTED          /* Switch does not support unequal load sharing with select groups. */
	OFPGMFC_OUT_OF_GROUPS               /* The group table is full. */
	OFPGMFC_OUT_OF_BUCKETS              /* The maximum number of action buckets for a group has been exceeded. */
	OFPGMFC_CHAINING_UNSUPPORTED        /* Switch does not support groups that forward to groups. */
	OFPGMFC_WATCH_UNSUPPORTED           /* This group cannot watch the watch_port or watch_group specified. */
	OFPGMFC_LOOP                        /* Group entry would cause a loop. */
	OFPGMFC_UNKNOWN_GROUP               /* Group not modified because a group MODIFY attempted to modify a non-existent group. */
)

const (
	OFPPMFC_BAD_PORT      = iota /* Specified port number does not exist. */
	OFPPMFC_BAD_HW_ADDR          /* Specified hardware address does not match the port number. */
	OFPPMFC_BAD_CONFIG           /* Specified config is invalid. */
	OFPPMFC_BAD_ADVERTISE        /* Specified advertise is invalid. */
)

const (
	OFPTMFC_BAD_TABLE  = iota /* Specified table does not exist. */
	OFPTMFC_BAD_CONFIG        /* Specified config is invalid. */
)

const (
	OFPQOFC_BAD_PORT  = iota /* Invalid port (or port does not exist). */
	OFPQOFC_BAD_QUEUE        /* Queue does not exist. */
	OFPQOFC_EPERM            /* Permissions error. */
)

const (
	OFPSCFC_BAD_FLAGS = iota /* Specified flags is invalid. */
	OFPSCFC_BAD_LEN          /* Specified len is invalid. */
)
